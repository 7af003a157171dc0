package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// spawnFood places a food on a uniformly random cell. Occupancy is not
// checked: food may land on the snake or on another food.
func (s *State) spawnFood() EntityID {
	at := Position{
		X: int(s.rng.Float64() * float64(s.arena.Width)),
		Y: int(s.rng.Float64() * float64(s.arena.Height)),
	}
	id := s.world.Spawn(Entity{
		Kind:  KindFood,
		Pos:   at,
		Size:  FoodSize,
		Color: core.ColorMagenta,
	})
	s.version++
	return id
}

// rollFoodPeriod draws a spawn period uniformly from [lo, hi).
func rollFoodPeriod(rng *rand.Rand, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rng.Int63n(int64(hi-lo)))
}
