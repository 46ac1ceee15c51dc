package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '@', core.ColorBlue)
	s.SetColored(3, 1, '*', core.ColorRed)

	got := RenderScreen(s)
	want := "ab@ \n   *"
	if got != want {
		t.Errorf("RenderScreen() = %q, want %q", got, want)
	}
}

func TestRenderScreenKnowsEveryColor(t *testing.T) {
	colors := []core.Color{
		core.ColorDefault, core.ColorRed, core.ColorGreen, core.ColorYellow, core.ColorBlue,
		core.ColorMagenta, core.ColorCyan, core.ColorWhite, core.ColorGray, core.ColorBrightWhite,
	}
	for _, c := range colors {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("No style for color %v", c)
		}
	}
}

func TestRenderScreenRows(t *testing.T) {
	s := core.NewScreen(3, 5)
	if n := strings.Count(RenderScreen(s), "\n"); n != 4 {
		t.Errorf("Expected 4 line breaks, got %d", n)
	}
}
