package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Canonical start of every round.
var (
	StartHead      = Position{X: 3, Y: 3}
	StartTail      = Position{X: 3, Y: 2}
	StartDirection = Up
)

// GrowthPolicy decides how many segments a tick with grow signals adds.
type GrowthPolicy int

const (
	// GrowOncePerTick adds one segment and one point when at least one
	// grow signal is pending, however many foods were eaten.
	GrowOncePerTick GrowthPolicy = iota
	// GrowPerSignal adds one segment and one point per food eaten.
	GrowPerSignal
)

// snakeBody is the singleton snake: its heading and its segment chain,
// head first. segments[0] is the head entity.
type snakeBody struct {
	direction Direction
	segments  []EntityID
}

// State is the simulation owned by the tick pipeline.
type State struct {
	arena  Arena
	world  *World
	snake  snakeBody
	growth GrowthPolicy
	rng    *rand.Rand

	signals Signals
	intent  Intent

	score     int
	highScore int
	rounds    int
	ticks     uint64 // movement ticks of the current round
	version   uint64 // bumped on every observable change

	events []core.Event
}

// NewState creates a state with the initial snake spawned.
// The arena must contain the canonical start cells.
func NewState(arena Arena, rng *rand.Rand, growth GrowthPolicy) *State {
	if !arena.Contains(StartHead) || !arena.Contains(StartTail) {
		panic("snake: arena does not contain the start position")
	}
	s := &State{
		arena:  arena,
		world:  NewWorld(),
		growth: growth,
		rng:    rng,
	}
	s.spawnSnake()
	return s
}

// tickPipeline is the fixed order of phases run on every movement tick.
// Eating and collision both read the post-move head; growth consumes what
// eating emitted and endRound consumes what collision emitted.
var tickPipeline = []func(*State){
	(*State).applyIntent,
	(*State).move,
	(*State).eat,
	(*State).collide,
	(*State).grow,
	(*State).endRound,
}

// Tick runs one movement tick.
func (s *State) Tick() {
	for _, phase := range tickPipeline {
		phase(s)
	}
	s.version++
}

// SetIntent latches the latest sampled intent until the next tick.
// IntentNone leaves an earlier intent in place.
func (s *State) SetIntent(i Intent) {
	if i != IntentNone {
		s.intent = i
	}
}

// Abandon ends the current round immediately, as if it had been lost.
func (s *State) Abandon() {
	s.signals.EmitGameOver(GameOverSignal{Cause: CauseRestart})
	s.endRound()
	s.version++
}

// spawnSnake creates the head and the first trailing segment.
func (s *State) spawnSnake() {
	head := s.world.Spawn(Entity{
		Kind:  KindHead,
		Pos:   StartHead,
		Size:  HeadSize,
		Color: core.ColorWhite,
	})
	s.snake = snakeBody{
		direction: StartDirection,
		segments:  []EntityID{head, s.spawnSegment(StartTail)},
	}
	s.intent = IntentNone
}

// spawnSegment creates a trailing segment with a random body colour.
func (s *State) spawnSegment(at Position) EntityID {
	return s.world.Spawn(Entity{
		Kind:  KindSegment,
		Pos:   at,
		Size:  SegmentSize,
		Color: core.BodyPalette[s.rng.Intn(len(core.BodyPalette))],
	})
}

// head returns the head entity. An empty chain is unreachable.
func (s *State) head() *Entity {
	if len(s.snake.segments) == 0 {
		panic("snake: segment chain is empty")
	}
	return s.world.MustGet(s.snake.segments[0])
}

// drainEvents returns and clears the events raised since the last call.
func (s *State) drainEvents() []core.Event {
	out := s.events
	s.events = nil
	return out
}

// Score returns the score of the current round.
func (s *State) Score() int { return s.score }

// HighScore returns the best score folded so far.
func (s *State) HighScore() int { return s.highScore }

// Direction returns the current heading.
func (s *State) Direction() Direction { return s.snake.direction }

// Rounds returns how many rounds have ended.
func (s *State) Rounds() int { return s.rounds }

// Ticks returns the movement ticks of the current round.
func (s *State) Ticks() uint64 { return s.ticks }

// Head returns the head position.
func (s *State) Head() Position { return s.head().Pos }

// Segments returns the chain positions, head first.
func (s *State) Segments() []Position {
	out := make([]Position, len(s.snake.segments))
	for i, id := range s.snake.segments {
		out[i] = s.world.MustGet(id).Pos
	}
	return out
}

// Foods returns the positions of all food entities.
func (s *State) Foods() []Position {
	ids := s.world.OfKind(KindFood)
	out := make([]Position, len(ids))
	for i, id := range ids {
		out[i] = s.world.MustGet(id).Pos
	}
	return out
}
