package snake

// collide raises a game over signal when the head left the arena or landed
// on another segment. Food never collides.
func (s *State) collide() {
	head := s.head().Pos

	if !s.arena.Contains(head) {
		s.signals.EmitGameOver(GameOverSignal{Cause: CauseWall})
	}

	for _, id := range s.snake.segments[1:] {
		if s.world.MustGet(id).Pos == head {
			s.signals.EmitGameOver(GameOverSignal{Cause: CauseSelf})
			break
		}
	}
}
