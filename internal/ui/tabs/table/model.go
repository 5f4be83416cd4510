// Package table provides the day-by-day contribution table tab.
package table

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roendal/guildwatch/internal/app"
	"github.com/roendal/guildwatch/internal/models"
	"github.com/roendal/guildwatch/internal/services"
	"github.com/roendal/guildwatch/internal/stats"
)

// keyMap defines the key bindings specific to the table tab.
type keyMap struct {
	ToggleOrder key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
}

// defaultKeyMap returns the default key bindings for the table tab.
func defaultKeyMap() keyMap {
	return keyMap{
		ToggleOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle date order"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}

// Model represents the table tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model

	// newestFirst controls the row order; the underlying rows are always
	// kept oldest first.
	newestFirst bool
	rows        []models.TableRow
	errorMsg    string
}

// New creates a new table model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:       state,
		services:    svc,
		keys:        defaultKeyMap(),
		viewport:    viewport.New(0, 0),
		newestFirst: true,
	}
}

// Init initializes the table tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the table tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.DatasetLoadedMsg:
		m.rebuild()

	case app.TabSwitchMsg:
		if msg.Tab == app.TabTable && m.rows == nil {
			m.rebuild()
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ToggleOrder):
			m.newestFirst = !m.newestFirst
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// rebuild recomputes the day rows from the current index.
func (m *Model) rebuild() {
	ix := m.state.Index()
	if ix == nil {
		return
	}

	var e *stats.Engine
	if m.services != nil {
		e = m.services.Engine()
	} else {
		e = stats.New(ix)
	}

	rows, err := e.TableRows()
	if err != nil {
		m.rows = nil
		m.errorMsg = err.Error()
		return
	}
	m.rows = rows
	m.errorMsg = ""
}

// orderedRows returns the rows in the display order.
func (m *Model) orderedRows() []models.TableRow {
	if !m.newestFirst {
		return m.rows
	}
	out := make([]models.TableRow, len(m.rows))
	for i, r := range m.rows {
		out[len(m.rows)-1-i] = r
	}
	return out
}

// SetSize sets the available size for the table tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.ToggleOrder,
		m.keys.Up,
		m.keys.Down,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleOrder},
		{m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown},
	}
}
