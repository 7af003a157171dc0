package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// endRound handles pending game over signals. Any number of signals in one
// tick collapse into a single restart: every entity is despawned, the score
// is folded into the high score and reset, and a fresh snake is spawned.
func (s *State) endRound() {
	pending := s.signals.DrainGameOver()
	if len(pending) == 0 {
		return
	}

	s.events = append(s.events, core.Event{
		Kind:   core.EventRoundOver,
		Score:  s.score,
		Length: len(s.snake.segments),
		Ticks:  s.ticks,
		Cause:  string(pending[0].Cause),
	})

	s.world.DespawnKinds(KindHead, KindSegment, KindFood)
	s.highScore = max(s.highScore, s.score)
	s.score = 0
	s.ticks = 0
	s.rounds++
	s.spawnSnake()
}
