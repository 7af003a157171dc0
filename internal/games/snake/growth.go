package snake

// grow appends segments at the tail's current cell for pending grow signals.
// The new segment overlaps the tail until the next move pulls them apart.
func (s *State) grow() {
	pending := s.signals.DrainGrow()
	if len(pending) == 0 {
		return
	}

	n := 1
	if s.growth == GrowPerSignal {
		n = len(pending)
	}

	for _i := 0; _i < n; _i++ {
		tail := s.world.MustGet(s.snake.segments[len(s.snake.segments)-1]).Pos
		s.snake.segments = append(s.snake.segments, s.spawnSegment(tail))
		s.score++
	}
}
