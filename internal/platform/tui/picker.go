package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/registry"
	"github.com/vovakirdan/tui-coaster/internal/storage"
)

// PickerItem is a selectable scenario with its best recorded score.
type PickerItem struct {
	ScenarioID string
	Title      string
	HighScore  int
}

// PickerModel is the Bubble Tea model for choosing a scenario.
type PickerModel struct {
	items          []PickerItem
	cursor         int
	width          int
	height         int
	keyMapper      *KeyMapper
	quitting       bool
	selected       *PickerItem
	openScoreboard bool
}

// NewPickerModel lists every registered scenario.
func NewPickerModel(store *storage.Store, cfg core.RuntimeConfig) PickerModel {
	scenarios := registry.List()
	items := make([]PickerItem, 0, len(scenarios))
	for _, sc := range scenarios {
		item := PickerItem{ScenarioID: sc.ID, Title: sc.Title}
		if store != nil {
			if high, err := store.HighScore(sc.ID); err == nil {
				item.HighScore = high
			}
		}
		items = append(items, item)
	}

	return PickerModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
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

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  C O A S T E R  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a scenario", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		best := ""
		if item.HighScore > 0 {
			best = fmt.Sprintf("  (best %d)", item.HighScore)
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-20s%s", cursor, item.Title, best), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Run  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen scenario, or nil if none was chosen.
func (m PickerModel) Selected() *PickerItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m PickerModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}

// PickerResult holds the outcome of running the picker.
type PickerResult struct {
	ScenarioID      string
	WantsScoreboard bool
	Quit            bool
}

// RunPicker shows the picker and returns the choice.
func RunPicker(store *storage.Store, cfg core.RuntimeConfig) (PickerResult, error) {
	p := tea.NewProgram(NewPickerModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	m, ok := finalModel.(PickerModel)
	if !ok {
		return PickerResult{Quit: true}, nil
	}

	switch {
	case m.WantsScoreboard():
		return PickerResult{WantsScoreboard: true}, nil
	case m.Selected() != nil:
		return PickerResult{ScenarioID: m.Selected().ScenarioID}, nil
	default:
		return PickerResult{Quit: true}, nil
	}
}
