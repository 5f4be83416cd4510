// Package info provides the configuration and archive info tab.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roendal/guildwatch/internal/app"
	"github.com/roendal/guildwatch/internal/config"
	"github.com/roendal/guildwatch/internal/services"
)

// keyMap defines the key bindings specific to the info tab.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// defaultKeyMap returns the default key bindings for the info tab.
func defaultKeyMap() keyMap {
	return keyMap{
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

// Model represents the info tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	cfg      *config.Config
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model

	archive    services.ArchiveStats
	hasArchive bool
}

// New creates a new info model.
func New(state *app.State, svc *services.Manager, cfg *config.Config) *Model {
	return &Model{
		state:    state,
		services: svc,
		cfg:      cfg,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the info tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.DatasetLoadedMsg:
		m.refreshArchiveStats()

	case app.TabSwitchMsg:
		if msg.Tab == app.TabInfo {
			m.refreshArchiveStats()
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// refreshArchiveStats re-reads the archive figures. Stale figures are
// kept on error so the card does not flicker empty.
func (m *Model) refreshArchiveStats() {
	if m.services == nil {
		return
	}
	stats, err := m.services.GetArchiveStats()
	if err != nil {
		return
	}
	m.archive = stats
	m.hasArchive = true
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Up,
		m.keys.Down,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.PageUp, m.keys.PageDown},
	}
}
