package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driving Step (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score folded in this process
	GameOver  bool // Whether the game has ended and waits for the platform
	Paused    bool // Whether the game is paused
}

// EventKind identifies a notable occurrence during a Step.
type EventKind int

const (
	// EventRoundOver fires when a round ends and the game restarts itself.
	EventRoundOver EventKind = iota + 1
)

// Event is a one-shot notification raised by a game during Step.
type Event struct {
	Kind   EventKind
	Score  int    // Score of the finished round
	Length int    // Segment count at the moment the round ended
	Ticks  uint64 // Movement ticks the round lasted
	Cause  string // Why the round ended ("wall", "self", "restart")
}

// StepResult is returned by Game.Step() after each frame.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
