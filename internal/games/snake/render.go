package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Glyphs drawn for each entity kind.
const (
	glyphHead    = '@'
	glyphSegment = 'o'
	glyphFood    = '*'
)

// Render draws the HUD, the arena and every entity.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	layout, ok := ComputeLayout(g.opts.Arena, dst.Bounds())
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(layout.Board, core.ColorGray)

	for _, id := range g.state.world.OfKind(KindFood) {
		g.renderEntity(dst, layout, g.state.world.MustGet(id), glyphFood)
	}
	// Tail first so the head ends up on top of overlapping segments.
	segs := g.state.snake.segments
	for i := len(segs) - 1; i > 0; i-- {
		g.renderEntity(dst, layout, g.state.world.MustGet(segs[i]), glyphSegment)
	}
	g.renderEntity(dst, layout, g.state.head(), glyphHead)

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderEntity(dst *core.Screen, l Layout, e *Entity, glyph rune) {
	r := l.Project(e.Pos, e.Size)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if l.Viewport.Contains(x, y) {
				dst.SetColored(x, y, glyph, e.Color)
			}
		}
	}
}

// renderHUD draws the score on the left, the high score on the right and
// a separator below.
func (g *Game) renderHUD(dst *core.Screen) {
	score := fmt.Sprintf("Score: %d", g.state.Score())
	high := fmt.Sprintf("High score: %d", g.state.HighScore())

	dst.DrawTextColored(1, 0, score, core.ColorBrightWhite)
	dst.DrawTextColored(dst.Width()-len(high)-1, 0, high, core.ColorBrightYellow)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
