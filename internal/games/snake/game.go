package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Variant selects how the open tuning choices of the game are resolved.
type Variant int

const (
	// Classic grows once per tick and keeps one food period for the session.
	Classic Variant = iota
	// Plus grows once per food eaten and redraws the food period after each spawn.
	Plus
)

// Options are the tunables read once per Reset.
type Options struct {
	Arena         Arena
	SnakeSpeed    time.Duration // movement tick period
	FoodPeriodMin time.Duration
	FoodPeriodMax time.Duration
}

// DefaultOptions returns the stock 20x20 arena moving every 120ms.
func DefaultOptions() Options {
	return Options{
		Arena:         Arena{Width: 20, Height: 20},
		SnakeSpeed:    120 * time.Millisecond,
		FoodPeriodMin: 500 * time.Millisecond,
		FoodPeriodMax: 3500 * time.Millisecond,
	}
}

// normalized replaces unusable values with defaults.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if !o.Arena.Contains(StartHead) || !o.Arena.Contains(StartTail) {
		o.Arena = def.Arena
	}
	if o.SnakeSpeed <= 0 {
		o.SnakeSpeed = def.SnakeSpeed
	}
	if o.FoodPeriodMin <= 0 {
		o.FoodPeriodMin = def.FoodPeriodMin
	}
	if o.FoodPeriodMax < o.FoodPeriodMin {
		o.FoodPeriodMax = o.FoodPeriodMin
	}
	return o
}

// Package-level options, set by the CLI from the loaded config before games
// are created.
var options = DefaultOptions()

// SetOptions replaces the options used by subsequent Resets.
func SetOptions(o Options) {
	options = o
}

// CurrentOptions returns the options subsequent Resets will use.
func CurrentOptions() Options {
	return options
}

// Game drives a State from platform frames.
type Game struct {
	variant Variant
	opts    Options
	state   *State
	rng     *rand.Rand

	frame      time.Duration // one Step worth of game time
	moveAcc    time.Duration
	foodAcc    time.Duration
	foodPeriod time.Duration

	paused  bool
	frames  uint64
	screenW int
	screenH int
}

// New creates the reference variant.
func New() *Game {
	return &Game{variant: Classic}
}

// NewPlus creates the variant that grows per food and rerolls the food timer.
func NewPlus() *Game {
	return &Game{variant: Plus}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          "snake",
		Title:       "Snake",
		Description: "Classic rules: one segment per tick, fixed food timer",
	}, func() registry.Game {
		return New()
	})
	registry.Register(registry.GameInfo{
		ID:          "snake_plus",
		Title:       "Snake+",
		Description: "One segment per food, food timer rerolled after each spawn",
	}, func() registry.Game {
		return NewPlus()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == Plus {
		return "snake_plus"
	}
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == Plus {
		return "Snake+"
	}
	return "Snake"
}

// Variant returns the rule set of the game.
func (g *Game) Variant() Variant {
	return g.variant
}

// Reset starts over as if the process had just started. The high score is
// not carried across Resets.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.opts = options.normalized()
	g.rng = rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // gameplay randomness

	growth := GrowOncePerTick
	if g.variant == Plus {
		growth = GrowPerSignal
	}
	g.state = NewState(g.opts.Arena, g.rng, growth)

	rate := cfg.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	g.frame = time.Second / time.Duration(rate)
	g.moveAcc = 0
	g.foodAcc = 0
	g.foodPeriod = rollFoodPeriod(g.rng, g.opts.FoodPeriodMin, g.opts.FoodPeriodMax)

	g.paused = false
	g.frames = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Resize records new screen dimensions. Game state is untouched.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frames++

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.state.version++
	}

	if in.Has(core.ActionRestart) {
		g.state.Abandon()
	}

	if g.paused {
		return core.StepResult{State: g.State(), Events: g.state.drainEvents()}
	}

	g.state.SetIntent(IntentFromAction(in.LastDirection))

	g.moveAcc += g.frame
	for g.moveAcc >= g.opts.SnakeSpeed {
		g.moveAcc -= g.opts.SnakeSpeed
		g.state.Tick()
	}

	g.foodAcc += g.frame
	for g.foodAcc >= g.foodPeriod {
		g.foodAcc -= g.foodPeriod
		g.state.spawnFood()
		if g.variant == Plus {
			g.foodPeriod = rollFoodPeriod(g.rng, g.opts.FoodPeriodMin, g.opts.FoodPeriodMax)
		}
	}

	return core.StepResult{State: g.State(), Events: g.state.drainEvents()}
}

// State returns the current game state. Rounds restart on their own, so
// GameOver is never set.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.state.Score(),
		HighScore: g.state.HighScore(),
		Paused:    g.paused,
	}
}

// Sim exposes the simulation for read-only inspection.
func (g *Game) Sim() *State {
	return g.state
}

// FoodPeriod returns the current food spawn period.
func (g *Game) FoodPeriod() time.Duration {
	return g.foodPeriod
}
