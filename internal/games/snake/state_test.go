package snake

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func newTestState(growth GrowthPolicy) *State {
	return NewState(Arena{Width: 20, Height: 20}, rand.New(rand.NewSource(1)), growth)
}

// placeSnake replaces the snake with one heading dir along the given cells,
// head first.
func placeSnake(s *State, dir Direction, cells ...Position) {
	s.world.DespawnKinds(KindHead, KindSegment)
	head := s.world.Spawn(Entity{Kind: KindHead, Pos: cells[0], Size: HeadSize, Color: core.ColorWhite})
	s.snake = snakeBody{direction: dir, segments: []EntityID{head}}
	for _, c := range cells[1:] {
		s.snake.segments = append(s.snake.segments, s.spawnSegment(c))
	}
}

func placeFood(s *State, at Position) EntityID {
	return s.world.Spawn(Entity{Kind: KindFood, Pos: at, Size: FoodSize, Color: core.ColorMagenta})
}

func assertFreshRound(t *testing.T, s *State) {
	t.Helper()
	if s.Score() != 0 {
		t.Errorf("Score = %d, want 0", s.Score())
	}
	segs := s.Segments()
	if len(segs) != 2 || segs[0] != StartHead || segs[1] != StartTail {
		t.Errorf("Segments = %v, want [%v %v]", segs, StartHead, StartTail)
	}
	if s.Direction() != StartDirection {
		t.Errorf("Direction = %v, want %v", s.Direction(), StartDirection)
	}
	if n := len(s.Foods()); n != 0 {
		t.Errorf("%d foods survived the restart", n)
	}
	if s.world.Len() != 2 {
		t.Errorf("world holds %d entities, want 2", s.world.Len())
	}
}

func TestInitialState(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	assertFreshRound(t, s)

	head := s.head()
	if head.Kind != KindHead || head.Color != core.ColorWhite || head.Size != HeadSize {
		t.Errorf("head entity = %+v", *head)
	}
	tail := s.world.MustGet(s.snake.segments[1])
	if tail.Kind != KindSegment || tail.Size != SegmentSize {
		t.Errorf("segment entity = %+v", *tail)
	}
}

func TestNewStateRejectsTinyArena(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewState should panic when the start cells do not fit")
		}
	}()
	NewState(Arena{Width: 3, Height: 3}, rand.New(rand.NewSource(1)), GrowOncePerTick)
}

func TestTickWithoutInput(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	s.Tick()

	if got := s.Head(); got != (Position{X: 3, Y: 4}) {
		t.Errorf("head = %v, want (3,4)", got)
	}
	if got := s.Segments()[1]; got != (Position{X: 3, Y: 3}) {
		t.Errorf("segment = %v, want (3,3)", got)
	}
	if s.Ticks() != 1 {
		t.Errorf("Ticks = %d, want 1", s.Ticks())
	}
}

func TestReverseIntentRejected(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	s.SetIntent(IntentDown)
	s.Tick()

	if s.Direction() != Up {
		t.Errorf("Direction = %v, want up", s.Direction())
	}
	if got := s.Head(); got != (Position{X: 3, Y: 4}) {
		t.Errorf("head = %v, want (3,4)", got)
	}
}

func TestIntentConsumedOnce(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	s.SetIntent(IntentRight)
	s.Tick()
	if s.Head() != (Position{X: 4, Y: 3}) {
		t.Fatalf("head = %v, want (4,3)", s.Head())
	}

	s.SetIntent(IntentNone)
	s.Tick()
	if s.Direction() != Right || s.Head() != (Position{X: 5, Y: 3}) {
		t.Errorf("direction %v head %v, want right (5,3)", s.Direction(), s.Head())
	}
	if s.intent != IntentNone {
		t.Errorf("latch not cleared: %v", s.intent)
	}
}

func TestLastIntentWins(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	s.SetIntent(IntentLeft)
	s.SetIntent(IntentRight)
	s.SetIntent(IntentNone)
	s.Tick()

	if s.Direction() != Right {
		t.Errorf("Direction = %v, want right", s.Direction())
	}
}

func TestChainFollowsLeader(t *testing.T) {
	s := NewState(Arena{Width: 20, Height: 20}, rand.New(rand.NewSource(7)), GrowPerSignal)
	rng := rand.New(rand.NewSource(99))

	for tick := 0; tick < 500; tick++ {
		if tick%3 == 0 {
			s.SetIntent(Intent(rng.Intn(5)))
		}
		if tick%4 == 0 {
			s.spawnFood()
		}

		before := s.Segments()
		s.applyIntent()
		s.move()
		after := s.Segments()

		for i := 1; i < len(after); i++ {
			if after[i] != before[i-1] {
				t.Fatalf("tick %d: segment %d at %v, want %v", tick, i, after[i], before[i-1])
			}
		}
		if want := before[0].Add(s.Direction().Delta()); after[0] != want {
			t.Fatalf("tick %d: head at %v, want %v", tick, after[0], want)
		}

		s.eat()
		s.collide()
		s.grow()
		s.endRound()
	}
}

func TestWallCollisionRestarts(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	placeSnake(s, Right, Position{X: 19, Y: 4}, Position{X: 18, Y: 4})
	placeFood(s, Position{X: 10, Y: 10})
	s.score = 4

	s.Tick()

	assertFreshRound(t, s)
	if s.HighScore() != 4 {
		t.Errorf("HighScore = %d, want 4", s.HighScore())
	}
	events := s.drainEvents()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Kind != core.EventRoundOver || ev.Cause != "wall" || ev.Score != 4 || ev.Length != 2 {
		t.Errorf("event = %+v", ev)
	}
}

func TestWallCollisionEveryEdge(t *testing.T) {
	tests := []struct {
		name  string
		dir   Direction
		cells []Position
	}{
		{"left", Left, []Position{{X: 0, Y: 5}, {X: 1, Y: 5}}},
		{"right", Right, []Position{{X: 19, Y: 5}, {X: 18, Y: 5}}},
		{"top", Up, []Position{{X: 5, Y: 19}, {X: 5, Y: 18}}},
		{"bottom", Down, []Position{{X: 5, Y: 0}, {X: 5, Y: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(GrowOncePerTick)
			placeSnake(s, tt.dir, tt.cells...)
			s.Tick()
			if s.Rounds() != 1 {
				t.Fatalf("Rounds = %d, want 1", s.Rounds())
			}
			assertFreshRound(t, s)
		})
	}
}

func TestStayingInsideIsNotCollision(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	placeSnake(s, Right, Position{X: 18, Y: 4}, Position{X: 17, Y: 4})
	s.Tick()

	if s.Rounds() != 0 {
		t.Fatal("moving onto the last column should not end the round")
	}
	if s.Head() != (Position{X: 19, Y: 4}) {
		t.Errorf("head = %v, want (19,4)", s.Head())
	}
}

func selfCollisionSnake(s *State) {
	// Head turns down into the cell the tail is leaving for the fourth segment.
	placeSnake(s, Down,
		Position{X: 5, Y: 5},
		Position{X: 6, Y: 5},
		Position{X: 6, Y: 4},
		Position{X: 5, Y: 4},
		Position{X: 4, Y: 4},
	)
}

func TestSelfCollisionRestarts(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	selfCollisionSnake(s)
	s.Tick()

	assertFreshRound(t, s)
	events := s.drainEvents()
	if len(events) != 1 || events[0].Cause != "self" || events[0].Length != 5 {
		t.Errorf("events = %+v", events)
	}
}

func TestFoodNeverCollides(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	placeFood(s, Position{X: 3, Y: 2})
	placeFood(s, Position{X: 3, Y: 5})
	s.Tick()

	if s.Rounds() != 0 {
		t.Error("food must not trigger a game over")
	}
}

func TestEatingGrowsAndScores(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	food := placeFood(s, Position{X: 3, Y: 4})

	s.Tick()

	if s.world.Alive(food) {
		t.Error("eaten food should be despawned")
	}
	if s.Score() != 1 {
		t.Errorf("Score = %d, want 1", s.Score())
	}
	want := []Position{{X: 3, Y: 4}, {X: 3, Y: 3}, {X: 3, Y: 3}}
	got := s.Segments()
	if len(got) != len(want) {
		t.Fatalf("Segments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}

	// The overlapping tail separates on the next move.
	s.Tick()
	got = s.Segments()
	if got[2] != (Position{X: 3, Y: 3}) || got[1] != (Position{X: 3, Y: 4}) {
		t.Errorf("after second tick Segments = %v", got)
	}
}

func TestFoodElsewhereUntouched(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	food := placeFood(s, Position{X: 8, Y: 8})
	s.Tick()

	if !s.world.Alive(food) {
		t.Error("food away from the head should remain")
	}
	if s.Score() != 0 || len(s.Segments()) != 2 {
		t.Errorf("score %d length %d, want 0 and 2", s.Score(), len(s.Segments()))
	}
}

func TestStackedFoodGrowth(t *testing.T) {
	tests := []struct {
		name      string
		growth    GrowthPolicy
		wantScore int
		wantLen   int
	}{
		{"once per tick", GrowOncePerTick, 1, 3},
		{"per signal", GrowPerSignal, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(tt.growth)
			for _i := 0; _i < 3; _i++ {
				placeFood(s, Position{X: 3, Y: 4})
			}
			s.Tick()

			if n := len(s.Foods()); n != 0 {
				t.Errorf("%d foods left under the head", n)
			}
			if s.Score() != tt.wantScore {
				t.Errorf("Score = %d, want %d", s.Score(), tt.wantScore)
			}
			if n := len(s.Segments()); n != tt.wantLen {
				t.Errorf("length = %d, want %d", n, tt.wantLen)
			}
		})
	}
}

func TestSignalsDrainedEachTick(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	placeFood(s, Position{X: 3, Y: 4})
	placeFood(s, Position{X: 3, Y: 4})
	s.Tick()

	if g, o := s.signals.Pending(); g != 0 || o != 0 {
		t.Errorf("pending signals after tick: grow=%d gameOver=%d", g, o)
	}
}

func TestHighScoreFolding(t *testing.T) {
	tests := []struct {
		name     string
		prior    int
		score    int
		wantHigh int
	}{
		{"raises", 5, 7, 7},
		{"keeps", 5, 3, 5},
		{"equal", 5, 5, 5},
		{"from zero", 0, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(GrowOncePerTick)
			s.highScore = tt.prior
			s.score = tt.score
			s.signals.EmitGameOver(GameOverSignal{Cause: CauseWall})
			s.endRound()

			if s.HighScore() != tt.wantHigh {
				t.Errorf("HighScore = %d, want %d", s.HighScore(), tt.wantHigh)
			}
			if s.Score() != 0 {
				t.Errorf("Score = %d, want 0", s.Score())
			}
		})
	}
}

func TestHighScoreMonotonic(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	rng := rand.New(rand.NewSource(3))

	prev := 0
	for _i := 0; _i < 200; _i++ {
		s.score = rng.Intn(50)
		s.Abandon()
		if s.HighScore() < prev {
			t.Fatalf("HighScore dropped from %d to %d", prev, s.HighScore())
		}
		prev = s.HighScore()
	}
}

func TestFoodEatenOnFatalTickCounts(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	selfCollisionSnake(s)
	placeFood(s, Position{X: 5, Y: 4})
	s.Tick()

	if s.HighScore() != 1 {
		t.Errorf("HighScore = %d, want 1", s.HighScore())
	}
	assertFreshRound(t, s)
}

func TestMultipleGameOversCollapse(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	s.signals.EmitGameOver(GameOverSignal{Cause: CauseWall})
	s.signals.EmitGameOver(GameOverSignal{Cause: CauseSelf})
	s.endRound()

	if s.Rounds() != 1 {
		t.Errorf("Rounds = %d, want 1", s.Rounds())
	}
	events := s.drainEvents()
	if len(events) != 1 || events[0].Cause != "wall" {
		t.Errorf("events = %+v", events)
	}
	assertFreshRound(t, s)
}

func TestAbandon(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	s.Tick()
	s.Tick()
	s.Abandon()

	events := s.drainEvents()
	if len(events) != 1 || events[0].Cause != "restart" || events[0].Ticks != 2 {
		t.Errorf("events = %+v", events)
	}
	if s.Ticks() != 0 {
		t.Errorf("Ticks = %d, want 0", s.Ticks())
	}
	assertFreshRound(t, s)
}

func TestStaleIDsAfterRestart(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	old := append([]EntityID(nil), s.snake.segments...)
	s.Abandon()

	for _, id := range old {
		if s.world.Alive(id) {
			t.Errorf("id %s from the previous round still resolves", id)
		}
	}
}

func TestSpawnFoodInBounds(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	for _i := 0; _i < 1000; _i++ {
		s.spawnFood()
	}

	foods := s.Foods()
	if len(foods) != 1000 {
		t.Fatalf("got %d foods, want 1000", len(foods))
	}
	for _, p := range foods {
		if !s.arena.Contains(p) {
			t.Fatalf("food spawned outside the arena at %v", p)
		}
	}
}

func TestEmptyChainPanics(t *testing.T) {
	s := newTestState(GrowOncePerTick)
	s.snake.segments = nil

	defer func() {
		if recover() == nil {
			t.Error("moving an empty chain should panic")
		}
	}()
	s.move()
}
