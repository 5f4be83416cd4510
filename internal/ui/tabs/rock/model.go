// Package rock provides the Honorable Rock leaderboard tab.
package rock

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roendal/guildwatch/internal/app"
	"github.com/roendal/guildwatch/internal/models"
)

// keyMap defines the key bindings specific to the rock tab.
type keyMap struct {
	NextMonth   key.Binding
	PrevMonth   key.Binding
	LatestMonth key.Binding
	Up          key.Binding
	Down        key.Binding
}

// defaultKeyMap returns the default key bindings for the rock tab.
func defaultKeyMap() keyMap {
	return keyMap{
		NextMonth: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "prev month"),
		),
		LatestMonth: key.NewBinding(
			key.WithKeys("L", "end"),
			key.WithHelp("L", "latest month"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the rock tab state.
type Model struct {
	state    *app.State
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model

	// selectedMonth indexes into the snapshot months; -1 tracks the
	// latest month as new snapshots arrive.
	selectedMonth int
}

// New creates a new rock model.
func New(state *app.State) *Model {
	return &Model{
		state:         state,
		keys:          defaultKeyMap(),
		viewport:      viewport.New(0, 0),
		selectedMonth: -1,
	}
}

// Init initializes the rock tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the rock tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.RockLoadedMsg:
		m.clampSelection()

	case tea.KeyMsg:
		months := m.months()
		switch {
		case key.Matches(msg, m.keys.NextMonth):
			if idx := m.currentIndex(months); idx < len(months)-1 {
				m.selectedMonth = idx + 1
				if m.selectedMonth == len(months)-1 {
					m.selectedMonth = -1
				}
			}
		case key.Matches(msg, m.keys.PrevMonth):
			if idx := m.currentIndex(months); idx > 0 {
				m.selectedMonth = idx - 1
			}
		case key.Matches(msg, m.keys.LatestMonth):
			m.selectedMonth = -1
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) months() []models.MonthKey {
	ix := m.state.RockIndex()
	if ix == nil {
		return nil
	}
	return ix.Months()
}

// currentIndex resolves the selection to a concrete month index.
func (m *Model) currentIndex(months []models.MonthKey) int {
	if m.selectedMonth < 0 || m.selectedMonth >= len(months) {
		return len(months) - 1
	}
	return m.selectedMonth
}

func (m *Model) clampSelection() {
	months := m.months()
	if m.selectedMonth >= len(months) {
		m.selectedMonth = -1
	}
}

// SetSize sets the available size for the rock tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.PrevMonth,
		m.keys.NextMonth,
		m.keys.LatestMonth,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.PrevMonth, m.keys.NextMonth, m.keys.LatestMonth},
		{m.keys.Up, m.keys.Down},
	}
}
