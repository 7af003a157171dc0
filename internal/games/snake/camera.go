package snake

import (
	"math"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// hudHeight is the number of screen rows above the board.
const hudHeight = 2

// Layout places the arena on a screen. Tiles are at most twice as wide as
// they are tall so cells come out roughly square in a terminal font.
type Layout struct {
	Arena    Arena
	Board    core.Rect // frame around the viewport
	Viewport core.Rect // cells covered by tiles
	TileW    int
	TileH    int
}

// ComputeLayout fits the arena into the screen below the HUD. It returns
// false when a tile would be smaller than one cell.
func ComputeLayout(arena Arena, screen core.Rect) (Layout, bool) {
	if arena.Width <= 0 || arena.Height <= 0 {
		return Layout{}, false
	}

	board := core.NewRect(screen.X, screen.Y+hudHeight, screen.W, screen.H-hudHeight)
	inner := board.Inset(1)

	tileH := inner.H / arena.Height
	tileW := min(inner.W/arena.Width, 2*tileH)
	if tileW < 1 || tileH < 1 {
		return Layout{}, false
	}

	w := tileW * arena.Width
	h := tileH * arena.Height
	vp := core.NewRect(inner.X+(inner.W-w)/2, inner.Y+(inner.H-h)/2, w, h)

	return Layout{
		Arena:    arena,
		Board:    vp.Inset(-1),
		Viewport: vp,
		TileW:    tileW,
		TileH:    tileH,
	}, true
}

// Project maps a grid cell to the screen cells an entity of the given size
// covers. Grid y grows upward, screen rows grow downward. The extent is
// centred in its tile and never smaller than one cell.
func (l Layout) Project(p Position, s Size) core.Rect {
	col := l.Viewport.X + p.X*l.TileW
	row := l.Viewport.Y + (l.Arena.Height-1-p.Y)*l.TileH

	w := max(1, int(math.Round(s.W*float64(l.TileW))))
	h := max(1, int(math.Round(s.H*float64(l.TileH))))

	return core.NewRect(col+(l.TileW-w)/2, row+(l.TileH-h)/2, w, h)
}
