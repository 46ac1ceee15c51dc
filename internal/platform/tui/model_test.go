package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// fakeGame is a scripted game: tests set its state between steps.
type fakeGame struct {
	state    core.GameState
	next     time.Duration
	err      error
	blinking bool
	resets   []core.RuntimeConfig
	steps    []core.InputFrame
	renders  int
}

func newFakeGame() *fakeGame {
	return &fakeGame{state: core.GameState{Preset: "medium", Length: 10}, next: 60 * time.Millisecond}
}

func (g *fakeGame) ID() string    { return "snake" }
func (g *fakeGame) Title() string { return "Snake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) error {
	g.resets = append(g.resets, cfg)
	return nil
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	if g.err != nil {
		return core.StepResult{State: g.state, Err: g.err}
	}
	g.state.Ticks++
	return core.StepResult{State: g.state, Next: g.next}
}

func (g *fakeGame) Render(dst *core.Screen) {
	g.renders++
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Blinking() bool        { return g.blinking }

type fakeStore struct {
	runs []storage.RunRecord
	high int
	err  error
}

func (s *fakeStore) SaveRun(r storage.RunRecord) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.runs = append(s.runs, r)
	return int64(len(s.runs)), nil
}

func (s *fakeStore) HighScore(gameID, preset string) (int, error) {
	return s.high, s.err
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func newTestModel(t *testing.T, g *fakeGame, store RunStore) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7}
	m, err := NewModel(g, store, cfg, nil)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, TickMsg{Gen: m.gen})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelResetsWithFooterRemoved(t *testing.T) {
	g := newFakeGame()
	newTestModel(t, g, nil)

	if len(g.resets) != 1 {
		t.Fatalf("Expected 1 reset, got %d", len(g.resets))
	}
	if rc := g.resets[0]; rc.ScreenW != 80 || rc.ScreenH != 23 || rc.Seed != 7 {
		t.Errorf("Unexpected runtime config %+v", rc)
	}
}

func TestModelLoadsStoredHighScore(t *testing.T) {
	g := newFakeGame()
	newTestModel(t, g, &fakeStore{high: 77})

	if len(g.resets) != 2 {
		t.Fatalf("Expected a second reset with the high score, got %d resets", len(g.resets))
	}
	if g.resets[1].HighScore != 77 {
		t.Errorf("Expected high score 77, got %d", g.resets[1].HighScore)
	}

	// Nothing stored: a single reset
	g = newFakeGame()
	newTestModel(t, g, &fakeStore{})
	if len(g.resets) != 1 {
		t.Errorf("Expected 1 reset without a stored score, got %d", len(g.resets))
	}
}

func TestModelDirectionsWaitForTick(t *testing.T) {
	g := newFakeGame()
	m := newTestModel(t, g, nil)

	m, cmd := update(t, m, keyPress("up"))
	m, _ = update(t, m, keyPress("left"))
	if cmd != nil || len(g.steps) != 0 {
		t.Fatal("Direction keys should not step the game")
	}

	m, cmd = tick(t, m)
	if len(g.steps) != 1 {
		t.Fatalf("Expected 1 step, got %d", len(g.steps))
	}
	if g.steps[0].Last != core.ActionLeft {
		t.Errorf("Expected last direction left, got %v", g.steps[0].Last)
	}
	if cmd == nil {
		t.Error("A tick should schedule the next one")
	}

	// Input is cleared after the step
	tick(t, m)
	if g.steps[1].Has(core.ActionLeft) {
		t.Error("Input should not carry over to the next step")
	}
}

func TestModelControlKeysStepImmediately(t *testing.T) {
	g := newFakeGame()
	m := newTestModel(t, g, nil)
	gen := m.gen

	m, cmd := update(t, m, keyPress("p"))
	if len(g.steps) != 1 || !g.steps[0].Has(core.ActionPause) {
		t.Fatalf("Pause should step at once, steps: %v", g.steps)
	}
	if m.gen != gen+1 || cmd == nil {
		t.Error("An immediate step should start a new tick schedule")
	}

	// The superseded tick is dropped
	m, cmd = update(t, m, TickMsg{Gen: gen})
	if len(g.steps) != 1 || cmd != nil {
		t.Error("A stale tick should not step the game")
	}

	update(t, m, keyPress(" "))
	if len(g.steps) != 2 || !g.steps[1].Has(core.ActionBoost) {
		t.Errorf("Boost should step at once, steps: %v", g.steps)
	}
}

func TestModelAnswersOnlyPrompts(t *testing.T) {
	g := newFakeGame()
	m := newTestModel(t, g, nil)

	m, _ = update(t, m, keyPress("y"))
	if len(g.steps) != 0 {
		t.Fatal("Confirm without a prompt should wait for the tick")
	}

	g.state.Paused = true
	m, _ = tick(t, m)
	update(t, m, keyPress("n"))
	if len(g.steps) != 2 || !g.steps[1].Has(core.ActionDecline) {
		t.Errorf("Decline on a prompt should step at once, steps: %v", g.steps)
	}
}

func TestModelIgnoresKeysWhileBlinking(t *testing.T) {
	g := newFakeGame()
	m := newTestModel(t, g, nil)

	g.blinking = true
	update(t, m, keyPress("q"))
	if len(g.steps) != 0 {
		t.Error("Keys should not step the game during the blink")
	}
}

func TestModelSavesLostRunOnce(t *testing.T) {
	g := newFakeGame()
	store := &fakeStore{}
	m := newTestModel(t, g, store)
	runID := m.RunID()
	if runID == "" {
		t.Fatal("A run ID should be assigned")
	}

	m, _ = tick(t, m)
	g.state.GameOver = true
	g.state.Score = 12
	g.state.Length = 14
	g.state.Level = 0
	m, _ = tick(t, m)
	m, _ = tick(t, m)

	if len(store.runs) != 1 {
		t.Fatalf("Expected 1 saved run, got %d", len(store.runs))
	}
	r := store.runs[0]
	if r.RunID != runID || r.GameID != "snake" || r.Preset != "medium" || r.Score != 12 || r.Length != 14 {
		t.Errorf("Unexpected run %+v", r)
	}
	if r.Ticks != 2 {
		t.Errorf("Expected 2 ticks, got %d", r.Ticks)
	}

	// Playing again starts a new run with its own ID
	g.state = core.GameState{Preset: "medium", Length: 10}
	m, _ = tick(t, m)
	if m.RunID() == runID {
		t.Error("A new run should get a new ID")
	}
	g.state.GameOver = true
	tick(t, m)
	if len(store.runs) != 2 || store.runs[1].RunID == runID {
		t.Errorf("Expected a second distinct run, got %+v", store.runs)
	}
}

func TestModelRestartStartsNewRun(t *testing.T) {
	g := newFakeGame()
	m := newTestModel(t, g, nil)

	for range 5 {
		m, _ = tick(t, m)
	}
	runID := m.RunID()

	// Restart accepted: the tick counter starts over
	g.state.Ticks = 0
	m, _ = tick(t, m)
	if m.RunID() == runID {
		t.Error("A restarted game should be a new run")
	}
}

func TestModelSaveFailureKeepsPlaying(t *testing.T) {
	g := newFakeGame()
	store := &fakeStore{}
	m := newTestModel(t, g, store)

	store.err = errors.New("disk full")
	g.state.GameOver = true
	_, cmd := tick(t, m)
	if cmd == nil || isQuit(cmd) {
		t.Error("A failed save should not stop the game")
	}
}

func TestModelQuit(t *testing.T) {
	g := newFakeGame()
	m := newTestModel(t, g, nil)

	g.state.Quit = true
	m, cmd := tick(t, m)
	if !isQuit(cmd) {
		t.Error("Expected the program to quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelEmbeddedQuitReturnsToMenu(t *testing.T) {
	g := newFakeGame()
	m, err := NewEmbeddedModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, nil)
	if err != nil {
		t.Fatalf("NewEmbeddedModel() failed: %v", err)
	}

	g.state.Quit = true
	m, cmd := tick(t, m)
	if cmd != nil {
		t.Error("An embedded model should not quit the program")
	}
	if !m.BackToMenu() {
		t.Error("Expected BackToMenu after quitting")
	}
}

func TestModelForceQuit(t *testing.T) {
	g := newFakeGame()
	m := newTestModel(t, g, nil)

	_, cmd := update(t, m, keyPress("ctrl+c"))
	if !isQuit(cmd) {
		t.Error("ctrl+c should quit at once")
	}
	if len(g.steps) != 0 {
		t.Error("ctrl+c should not step the game")
	}
}

func TestModelStepErrorStops(t *testing.T) {
	g := newFakeGame()
	m := newTestModel(t, g, nil)

	g.err = errors.New("broken ring")
	m, cmd := tick(t, m)
	if !isQuit(cmd) {
		t.Error("Expected quit on a step error")
	}
	if !errors.Is(m.Err(), g.err) {
		t.Errorf("Expected the step error, got %v", m.Err())
	}
}

func TestModelResizeResets(t *testing.T) {
	g := newFakeGame()
	m := newTestModel(t, g, nil)
	runID := m.RunID()

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if len(g.resets) != 2 {
		t.Fatalf("Expected a reset on resize, got %d resets", len(g.resets))
	}
	if rc := g.resets[1]; rc.ScreenW != 100 || rc.ScreenH != 29 {
		t.Errorf("Unexpected runtime config %+v", rc)
	}
	if cmd == nil || m.RunID() == runID {
		t.Error("A resize should start a new run and a new tick schedule")
	}

	// Same size: nothing to do
	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if len(g.resets) != 2 {
		t.Error("Same-size resize should not reset")
	}
}

func TestModelView(t *testing.T) {
	g := newFakeGame()
	m := newTestModel(t, g, nil)

	view := m.View()
	if g.renders != 1 {
		t.Errorf("Expected 1 render, got %d", g.renders)
	}
	if len(view) == 0 {
		t.Fatal("View should not be empty")
	}
	if m.screen.Height() != 23 {
		t.Errorf("Expected a 23-row game screen, got %d", m.screen.Height())
	}
}
