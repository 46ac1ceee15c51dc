package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// MenuItem represents a selectable speed preset in the menu.
type MenuItem struct {
	Preset engine.Preset
	Title  string
}

// MenuModel is the Bubble Tea model for the start menu: it picks a speed
// preset and the game variant (walled or wrapping edges).
type MenuModel struct {
	items          []MenuItem
	games          []registry.GameInfo
	cursor         int
	gameIdx        int
	width          int
	height         int
	store          RunStore
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a preset
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The cursor starts on the preset
// named by cfg.Difficulty and the variant on gameID when they are known.
func NewMenuModel(store RunStore, cfg core.RuntimeConfig, gameID string) MenuModel {
	presets := engine.Presets()
	items := make([]MenuItem, 0, len(presets))
	cursor := 0
	for i, p := range presets {
		items = append(items, MenuItem{
			Preset: p,
			Title:  strings.ToUpper(string(p[:1])) + string(p[1:]),
		})
		if string(p) == cfg.Difficulty || (cfg.Difficulty == "" && p == engine.PresetMedium) {
			cursor = i
		}
	}

	games := registry.List()
	gameIdx := 0
	for i, g := range games {
		if g.ID == gameID {
			gameIdx = i
		}
	}

	return MenuModel{
		items:     items,
		games:     games,
		cursor:    cursor,
		gameIdx:   gameIdx,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionToggle:
		if len(m.games) > 0 {
			m.gameIdx = (m.gameIdx + 1) % len(m.games)
		}

	case MenuActionSelect:
		if len(m.items) > 0 && len(m.games) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.config.Difficulty = string(selected.Preset)
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(centerText("  S N A K E  ", m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText("Select a speed", m.width))
	b.WriteString("\n\n")

	// Preset list
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-8s %3d ms   best %5d", cursor, item.Title,
			item.Preset.BaseInterval().Milliseconds(), m.highScore(item.Preset))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Variant toggle
	b.WriteString("\n")
	if gameID := m.GameID(); gameID != "" {
		b.WriteString(centerText("< "+registry.Title(gameID)+" >", m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Speed  |  Left/Right: Walls  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) highScore(p engine.Preset) int {
	if m.store == nil || m.GameID() == "" {
		return 0
	}
	high, err := m.store.HighScore(m.GameID(), string(p))
	if err != nil {
		return 0
	}
	return high
}

// GameID returns the game variant currently chosen.
func (m MenuModel) GameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameIdx].ID
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize
// or by the selected preset).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Preset          engine.Preset // selected, or under the cursor when not playing
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, gameID string) (MenuResult, error) {
	model := NewMenuModel(runStore(store), cfg, gameID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, fmt.Errorf("tui: menu: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
		GameID: m.GameID(),
	}
	if len(m.items) > 0 {
		result.Preset = m.items[m.cursor].Preset
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() == nil {
		result.Quit = true
	}

	return result, nil
}

// runStore keeps a nil *storage.Store from becoming a non-nil RunStore.
func runStore(store *storage.Store) RunStore {
	if store == nil {
		return nil
	}
	return store
}
