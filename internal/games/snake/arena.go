package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Position is a grid cell. Up is +Y, Right is +X.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position offset by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Size is the rendering scale of an entity relative to one grid cell.
// The simulation never reads it.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Square returns a Size with equal width and height.
func Square(s float64) Size {
	return Size{W: s, H: s}
}

var (
	HeadSize    = Square(0.8)
	SegmentSize = Square(0.65)
	FoodSize    = Square(0.8)
)

// Arena is the fixed playing field of Width x Height cells.
type Arena struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Bounds returns the arena as a rectangle anchored at the origin.
func (a Arena) Bounds() core.Rect {
	return core.NewRect(0, 0, a.Width, a.Height)
}

// Contains reports whether p lies in [0, Width) x [0, Height).
func (a Arena) Contains(p Position) bool {
	return a.Bounds().Contains(p.X, p.Y)
}
