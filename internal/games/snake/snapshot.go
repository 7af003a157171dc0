package snake

import "time"

// Snapshot captures the observable game state for determinism tests and
// spectators.
type Snapshot struct {
	Game       string     `json:"game"`
	Generation uint64     `json:"generation"`
	Arena      Arena      `json:"arena"`
	Direction  string     `json:"direction"`
	Segments   []Position `json:"segments"` // head first
	Foods      []Position `json:"foods"`
	Score      int        `json:"score"`
	HighScore  int        `json:"high_score"`
	Rounds     int        `json:"rounds"`
	Ticks      uint64     `json:"ticks"`
	Paused     bool       `json:"paused"`
	FoodPeriod string     `json:"food_period"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Game:       g.ID(),
		Generation: g.state.version,
		Arena:      g.opts.Arena,
		Direction:  g.state.Direction().String(),
		Segments:   g.state.Segments(),
		Foods:      g.state.Foods(),
		Score:      g.state.Score(),
		HighScore:  g.state.HighScore(),
		Rounds:     g.state.Rounds(),
		Ticks:      g.state.Ticks(),
		Paused:     g.paused,
		FoodPeriod: g.foodPeriod.Round(time.Millisecond).String(),
	}
}

// Generation changes whenever the snapshot would.
func (g *Game) Generation() uint64 {
	return g.state.version
}

// SnapshotValue returns the snapshot for generic consumers.
func (g *Game) SnapshotValue() any {
	return g.Snapshot()
}
