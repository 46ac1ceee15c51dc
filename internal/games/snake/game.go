// Package snake adapts the snake engine to the platform game interface:
// it maps actions to engine calls, paces the engine with the speed curve
// and draws the board, the HUD and the prompts.
package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Mode selects the grid edges.
type Mode string

const (
	ModeWalled Mode = "walled"
	ModeWrap   Mode = "wrap"
)

// Registered game IDs.
const (
	IDWalled = "snake"
	IDWrap   = "snake_wrap"
)

// Timing outside normal play.
const (
	blinkInterval = 140 * time.Millisecond
	idleInterval  = 100 * time.Millisecond
	blinkSteps    = 10 // five on/off cycles of the fatal cell
	hudHeight     = 1
)

// Game implements the snake game on top of the engine.
type Game struct {
	mode Mode
	cfg  config.SnakeConfig
	eng  *engine.Engine

	screenW int
	screenH int
	offsetX int // board origin on screen
	offsetY int

	paused    bool
	tooSmall  bool
	blinkLeft int
	newHigh   bool
}

// Package-level config shared by every new game (set once by the CLI).
var gameConfig = config.DefaultSnakeConfig()

// SetConfig sets the configuration new games start from.
func SetConfig(cfg config.SnakeConfig) {
	gameConfig = cfg
}

// Config returns the configuration new games start from.
func Config() config.SnakeConfig {
	return gameConfig
}

// New creates a walled snake game.
func New() *Game {
	return &Game{mode: ModeWalled}
}

// NewWrap creates a snake game whose edges wrap around.
func NewWrap() *Game {
	return &Game{mode: ModeWrap}
}

func init() {
	registry.Register(IDWalled, func() registry.Game {
		return New()
	})
	registry.Register(IDWrap, func() registry.Game {
		return NewWrap()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeWrap {
		return IDWrap
	}
	return IDWalled
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeWrap {
		return "Snake (Wrap)"
	}
	return "Snake"
}

// Reset starts a new run sized to the screen. A screen too small for the
// board is not an error: the game waits in the "too small" state until the
// next Reset.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	g.cfg = gameConfig
	g.cfg.Grid.Bordered = g.mode == ModeWalled
	if err := config.ApplySpeedPreset(&g.cfg, config.DifficultyPreset(rc.Difficulty)); err != nil {
		return err
	}

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.paused = false
	g.blinkLeft = 0
	g.newHigh = false
	g.tooSmall = false

	availW := min(g.screenW, engine.MaxWidth)
	availH := min(g.screenH-hudHeight, engine.MaxHeight)
	ec := g.cfg.EngineConfig(availW, availH)
	if ec.Width > g.screenW || ec.Height > g.screenH-hudHeight {
		g.tooSmall = true
		g.eng = nil
		return nil
	}
	g.offsetX = (g.screenW - ec.Width) / 2
	g.offsetY = hudHeight

	g.eng = engine.New(rand.New(rand.NewSource(rc.Seed)))
	g.eng.SetHighScore(rc.HighScore)
	g.eng.OnNewHighScore(func(int) { g.newHigh = true })

	if _, err := g.eng.Reset(ec); err != nil {
		if errors.Is(err, engine.ErrConfiguration) {
			g.tooSmall = true
			g.eng = nil
			return nil
		}
		return fmt.Errorf("snake: reset: %w", err)
	}
	return nil
}

// Step applies the input gathered since the last step and advances the
// engine. The result tells the platform when to step next.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall || g.eng == nil {
		return core.StepResult{State: g.State(), Next: idleInterval}
	}

	// The fatal cell blinks before the "play again" prompt takes input
	if g.blinkLeft > 0 {
		g.blinkLeft--
		return core.StepResult{State: g.State(), Next: blinkInterval}
	}

	var err error
	switch g.eng.State() {
	case engine.StateLost:
		err = g.answer(in.Has(core.ActionConfirm) || in.Has(core.ActionRestart),
			in.Has(core.ActionDecline) || in.Has(core.ActionQuit))
	case engine.StateAwaitingQuit, engine.StateAwaitingRestart:
		err = g.answer(in.Has(core.ActionConfirm), in.Has(core.ActionDecline))
	case engine.StateRunning:
		err = g.play(in)
	}
	if err != nil {
		return core.StepResult{State: g.State(), Err: err}
	}

	return core.StepResult{State: g.State(), Next: g.nextInterval()}
}

// answer resolves a pending prompt. Without an answer the prompt stays open.
func (g *Game) answer(accept, decline bool) error {
	if !accept && !decline {
		return nil
	}
	st, err := g.eng.Confirm(accept)
	if err != nil {
		return fmt.Errorf("snake: confirm: %w", err)
	}
	if accept && st == engine.StateRunning {
		g.newHigh = false
		g.paused = false
	}
	return nil
}

// play handles one step of a running game.
func (g *Game) play(in core.InputFrame) error {
	switch {
	case in.Has(core.ActionQuit):
		g.eng.RequestQuit()
		return nil
	case in.Has(core.ActionRestart):
		g.eng.RequestRestart()
		return nil
	case in.Has(core.ActionPause):
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	heading := g.eng.Heading()
	if h, ok := headingFor(in.Last); ok {
		heading = h
	}

	steps := 1
	if in.Has(core.ActionBoost) {
		steps = g.cfg.Snake.BoostSteps
	}
	for range steps {
		out, err := g.eng.Tick(heading)
		if err != nil {
			return fmt.Errorf("snake: tick %d: %w", g.eng.Ticks(), err)
		}
		if out == engine.OutcomeLost {
			g.blinkLeft = blinkSteps
			break
		}
	}
	return nil
}

func (g *Game) nextInterval() time.Duration {
	switch {
	case g.blinkLeft > 0:
		return blinkInterval
	case g.paused || g.eng.State() != engine.StateRunning:
		return idleInterval
	default:
		return g.eng.NextInterval()
	}
}

// headingFor maps a direction action to an engine heading.
func headingFor(a core.Action) (engine.Heading, bool) {
	switch a {
	case core.ActionUp:
		return engine.HeadingUp, true
	case core.ActionDown:
		return engine.HeadingDown, true
	case core.ActionLeft:
		return engine.HeadingLeft, true
	case core.ActionRight:
		return engine.HeadingRight, true
	default:
		return 0, false
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Preset: g.cfg.Speed.Preset,
		Paused: g.paused,
	}
	if g.eng == nil {
		return st
	}
	rs := g.eng.RunState()
	st.Score = rs.Score
	st.Length = rs.Length
	st.Level = rs.Level
	st.Ticks = rs.Ticks
	st.GameOver = rs.State == engine.StateLost
	st.Quit = rs.State == engine.StateQuit
	st.Paused = g.paused || rs.State == engine.StateAwaitingQuit || rs.State == engine.StateAwaitingRestart
	st.NewHighScore = g.newHigh
	return st
}

// Blinking reports whether the fatal cell animation is still running.
func (g *Game) Blinking() bool {
	return g.blinkLeft > 0
}

// TooSmall reports whether the screen cannot hold the board.
func (g *Game) TooSmall() bool {
	return g.tooSmall
}
