package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
)

// glyphs maps cell contents to their screen look.
var glyphs = map[engine.CellContent]core.Cell{
	engine.Head:         {Rune: '@', Color: core.ColorBlue},
	engine.Body:         {Rune: '#', Color: core.ColorCyan},
	engine.Powerup:      {Rune: '$', Color: core.ColorGreen},
	engine.SuperPowerup: {Rune: '%', Color: core.ColorYellow},
	engine.Bomb:         {Rune: '*', Color: core.ColorRed},
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.eng == nil {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)

	switch g.eng.State() {
	case engine.StateLost:
		if g.blinkLeft == 0 {
			g.renderOverlay(dst, "You lose!", fmt.Sprintf("Your score: %d", g.eng.Score()), "Play new game? (y/n)")
		}
	case engine.StateAwaitingQuit:
		g.renderOverlay(dst, "Are you sure you want to quit? (y/n)")
	case engine.StateAwaitingRestart:
		g.renderOverlay(dst, "Start a new game? (y/n)")
	case engine.StateRunning:
		if g.paused {
			g.renderOverlay(dst, "Game paused - press 'p' to resume")
		}
	}
}

// renderHUD draws the status line above the board.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" SCORE %d; LEVEL %d  HI %d ", g.eng.Score(), g.eng.Level(), g.eng.HighScore())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	preset := fmt.Sprintf(" %s ", g.cfg.Speed.Preset)
	dst.DrawTextColored(dst.Width()-len(preset), 0, preset, core.ColorGray)
}

// renderBoard draws walls, the snake and the items.
func (g *Game) renderBoard(dst *core.Screen) {
	snap := g.eng.Snapshot()

	if snap.Bordered {
		dst.DrawBox(core.NewRect(g.offsetX, g.offsetY, snap.Width, snap.Height))
	}

	for y := range snap.Height {
		for x := range snap.Width {
			cell, ok := glyphs[snap.At(engine.Position{X: x, Y: y})]
			if !ok {
				continue
			}
			dst.SetColored(g.offsetX+x, g.offsetY+y, cell.Rune, cell.Color)
		}
	}

	// The fatal cell alternates between '%' and '@' while blinking
	if p, ok := g.eng.FatalCell(); ok && g.blinkLeft > 0 {
		r := '%'
		if g.blinkLeft%2 == 0 {
			r = '@'
		}
		dst.SetColored(g.offsetX+p.X, g.offsetY+p.Y, r, core.ColorRed)
	}
}

// renderOverlay draws a centered box with the given lines.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l)
	}
}
