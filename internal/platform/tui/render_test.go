package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderPlainProfileMatchesBuffer(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	sr := NewScreenRenderer(r)

	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '@', core.ColorWhite)
	s.SetColored(3, 0, 'o', core.ColorRed)
	s.SetColored(4, 0, 'o', core.ColorRed)
	s.SetColored(0, 1, '*', core.ColorMagenta)

	if got, want := sr.Render(s), s.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderColoredRuns(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	sr := NewScreenRenderer(r)

	s := core.NewScreen(4, 1)
	s.SetColored(0, 0, 'o', core.ColorRed)
	s.SetColored(1, 0, 'o', core.ColorRed)
	s.SetColored(2, 0, '@', core.ColorWhite)

	out := sr.Render(s)
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected escape sequences in %q", out)
	}
	if !strings.Contains(out, "oo") {
		t.Errorf("same-colour cells should share one run: %q", out)
	}
	if !strings.HasSuffix(out, " ") {
		t.Errorf("default cells should be written unstyled: %q", out)
	}
}
