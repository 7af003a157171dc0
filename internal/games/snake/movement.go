package snake

// applyIntent consumes the latched intent at the start of a tick.
func (s *State) applyIntent() {
	s.snake.direction = ResolveDirection(s.snake.direction, s.intent)
	s.intent = IntentNone
}

// move advances the head one cell and drags every other segment into the
// cell its predecessor held before this tick. Positions are not clamped;
// leaving the arena is detected by collide.
func (s *State) move() {
	if len(s.snake.segments) == 0 {
		panic("snake: move with empty segment chain")
	}

	delta := s.snake.direction.Delta()
	var prev Position
	for i, id := range s.snake.segments {
		seg := s.world.MustGet(id)
		old := seg.Pos
		if i == 0 {
			seg.Pos = seg.Pos.Add(delta)
		} else {
			seg.Pos = prev
		}
		prev = old
	}
	s.ticks++
}
