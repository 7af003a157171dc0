package snake

// Cause explains why a round ended.
type Cause string

const (
	CauseWall    Cause = "wall"
	CauseSelf    Cause = "self"
	CauseRestart Cause = "restart"
)

// GrowSignal is raised once per food eaten.
type GrowSignal struct {
	At Position
}

// GameOverSignal is raised by each failed collision check.
type GameOverSignal struct {
	Cause Cause
}

// Signals holds the per-tick message queues between phases.
// Every queue is drained by exactly one handler in the same tick.
type Signals struct {
	grow     []GrowSignal
	gameOver []GameOverSignal
}

// EmitGrow queues a grow signal.
func (s *Signals) EmitGrow(sig GrowSignal) {
	s.grow = append(s.grow, sig)
}

// EmitGameOver queues a game over signal.
func (s *Signals) EmitGameOver(sig GameOverSignal) {
	s.gameOver = append(s.gameOver, sig)
}

// DrainGrow returns and clears the pending grow signals.
func (s *Signals) DrainGrow() []GrowSignal {
	out := s.grow
	s.grow = nil
	return out
}

// DrainGameOver returns and clears the pending game over signals.
func (s *Signals) DrainGameOver() []GameOverSignal {
	out := s.gameOver
	s.gameOver = nil
	return out
}

// Pending reports the number of undrained signals of each kind.
func (s *Signals) Pending() (grow, gameOver int) {
	return len(s.grow), len(s.gameOver)
}
