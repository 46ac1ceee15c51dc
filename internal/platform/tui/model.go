package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// footerHeight is the number of rows reserved below the game for key help.
const footerHeight = 1

// RunStore persists finished runs. *storage.Store implements it.
type RunStore interface {
	SaveRun(r storage.RunRecord) (int64, error)
	HighScore(gameID, preset string) (int, error)
}

// blinker is implemented by games that animate before accepting input.
type blinker interface {
	Blinking() bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      RunStore
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model

	gen        int    // current tick schedule
	runID      string // uuid of the run in progress
	runSaved   bool   // whether the current lost run has been saved
	quitting   bool
	embedded   bool // running inside a session; quitting returns to its menu
	backToMenu bool
	err        error
}

// NewModel creates a new Bubble Tea model for the given game and resets it.
// store and logger may be nil.
func NewModel(game registry.Game, store RunStore, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 0)),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		help:       help.New(),
	}
	m.help.Width = cfg.ScreenW

	if err := m.resetGame(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// NewEmbeddedModel creates a model that hands control back to its session
// when the player quits instead of ending the program.
func NewEmbeddedModel(game registry.Game, store RunStore, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	m, err := NewModel(game, store, cfg, logger)
	m.embedded = true
	return m, err
}

// gameConfig is the runtime config as seen by the game: the footer is not
// part of its screen.
func (m Model) gameConfig() core.RuntimeConfig {
	rc := m.config
	rc.ScreenH = max(rc.ScreenH-footerHeight, 0)
	return rc
}

// resetGame starts a new run, seeding it with the stored high score of the
// preset the game settles on.
func (m *Model) resetGame() error {
	if err := m.game.Reset(m.gameConfig()); err != nil {
		return fmt.Errorf("tui: reset %s: %w", m.game.ID(), err)
	}

	preset := m.game.State().Preset
	if m.store != nil {
		high, err := m.store.HighScore(m.game.ID(), preset)
		if err != nil {
			m.logger.Warn("cannot load high score", "game", m.game.ID(), "preset", preset, "err", err)
		} else if high != m.config.HighScore {
			m.config.HighScore = high
			if err := m.game.Reset(m.gameConfig()); err != nil {
				return fmt.Errorf("tui: reset %s: %w", m.game.ID(), err)
			}
		}
	}

	m.gameState = m.game.State()
	m.startRun()
	return nil
}

func (m *Model) startRun() {
	m.runID = uuid.NewString()
	m.runSaved = false
	m.logger.Info("run started",
		"game", m.game.ID(),
		"preset", m.gameState.Preset,
		"run", m.runID,
		"seed", m.config.Seed,
		"high", m.config.HighScore,
	)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.gen, 0)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil // superseded schedule
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, forceQuit := m.keys.MapKey(msg)
	if forceQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionNone {
		return m, nil
	}
	m.inputFrame.Set(action)

	// Directions wait for the next tick; everything else is answered now
	if !m.immediate(action) {
		return m, nil
	}
	if b, ok := m.game.(blinker); ok && b.Blinking() {
		return m, nil
	}
	m.gen++
	return m.handleTick()
}

// immediate reports whether an action should step the game right away
// instead of waiting for the next tick.
func (m Model) immediate(action core.Action) bool {
	switch action {
	case core.ActionBoost, core.ActionPause, core.ActionQuit, core.ActionRestart:
		return true
	case core.ActionConfirm, core.ActionDecline:
		// Only prompts take an answer
		return m.gameState.Paused || m.gameState.GameOver
	default:
		return false
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}

	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 0))
	m.help.Width = msg.Width

	// The board is sized to the screen, so a resize starts a new run
	if !m.gameState.GameOver {
		if err := m.resetGame(); err != nil {
			return m.fail(err)
		}
		m.gen++
		return m, tickCmd(m.gen, 0)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	if result.Err != nil {
		return m.fail(result.Err)
	}
	m.gameState = result.State

	switch {
	case m.gameState.Quit:
	case m.gameState.GameOver:
		if !m.runSaved {
			m.saveRun()
		}
	case prev.GameOver || m.gameState.Ticks < prev.Ticks:
		m.startRun()
	}

	if m.gameState.NewHighScore && !prev.NewHighScore {
		m.logger.Info("new high score", "game", m.game.ID(), "score", m.gameState.Score)
	}

	if m.gameState.Quit {
		m.logger.Info("quit", "game", m.game.ID())
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	// Continue ticking
	return m, tickCmd(m.gen, result.Next)
}

// saveRun records the lost run once.
func (m *Model) saveRun() {
	m.runSaved = true
	st := m.gameState
	m.logger.Info("run lost",
		"game", m.game.ID(),
		"run", m.runID,
		"score", st.Score,
		"length", st.Length,
		"level", st.Level,
		"ticks", st.Ticks,
	)
	if m.store == nil {
		return
	}
	_, err := m.store.SaveRun(storage.RunRecord{
		RunID:  m.runID,
		GameID: m.game.ID(),
		Preset: st.Preset,
		Score:  st.Score,
		Length: st.Length,
		Level:  st.Level,
		Ticks:  st.Ticks,
	})
	if err != nil {
		// The game continues regardless
		m.logger.Warn("cannot save run", "run", m.runID, "err", err)
	}
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Error("game stopped", "game", m.game.ID(), "err", err)
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// RunID returns the uuid of the run in progress.
func (m Model) RunID() string {
	return m.runID
}

// BackToMenu reports whether an embedded model wants to return to its menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the error that stopped the game, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program for the given game.
// store and logger may be nil.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	var runs RunStore
	if store != nil {
		runs = store
	}

	model, err := NewModel(game, runs, cfg, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
