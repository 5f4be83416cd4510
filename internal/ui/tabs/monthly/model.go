// Package monthly provides the monthly gain chart tab.
package monthly

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roendal/guildwatch/internal/app"
	"github.com/roendal/guildwatch/internal/models"
	"github.com/roendal/guildwatch/internal/services"
	"github.com/roendal/guildwatch/internal/stats"
)

// chartMode selects between the bar and line renderings.
type chartMode int

const (
	chartBar chartMode = iota
	chartLine
)

// keyMap defines the key bindings specific to the monthly tab.
type keyMap struct {
	NextGuild   key.Binding
	PrevGuild   key.Binding
	ToggleChart key.Binding
	ShowHidden  key.Binding
}

// defaultKeyMap returns the default key bindings for the monthly tab.
func defaultKeyMap() keyMap {
	return keyMap{
		NextGuild: key.NewBinding(
			key.WithKeys("l", "right", "n"),
			key.WithHelp("→/l", "next guild"),
		),
		PrevGuild: key.NewBinding(
			key.WithKeys("h", "left", "p"),
			key.WithHelp("←/h", "prev guild"),
		),
		ToggleChart: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "bar/line chart"),
		),
		ShowHidden: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle hidden guilds"),
		),
	}
}

// Model represents the monthly tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model

	selectedGuild int
	mode          chartMode
	showHidden    bool
}

// New creates a new monthly model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		mode:     chartBar,
	}
}

// Init initializes the monthly tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the monthly tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.DatasetLoadedMsg:
		m.clampSelection()

	case tea.KeyMsg:
		count := len(m.guilds())
		switch {
		case key.Matches(msg, m.keys.NextGuild):
			if count > 0 {
				m.selectedGuild = (m.selectedGuild + 1) % count
			}
		case key.Matches(msg, m.keys.PrevGuild):
			if count > 0 {
				m.selectedGuild = (m.selectedGuild - 1 + count) % count
			}
		case key.Matches(msg, m.keys.ToggleChart):
			if m.mode == chartBar {
				m.mode = chartLine
			} else {
				m.mode = chartBar
			}
		case key.Matches(msg, m.keys.ShowHidden):
			m.showHidden = !m.showHidden
			m.clampSelection()
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) clampSelection() {
	count := len(m.guilds())
	if count == 0 {
		m.selectedGuild = 0
		return
	}
	if m.selectedGuild >= count {
		m.selectedGuild = count - 1
	}
}

// guilds returns the selectable guilds in standings order.
func (m *Model) guilds() []models.Guild {
	ix := m.state.Index()
	if ix == nil {
		return nil
	}
	all := ix.Guilds()
	if m.showHidden {
		return all
	}
	visible := make([]models.Guild, 0, len(all))
	for _, g := range all {
		if g.Visible {
			visible = append(visible, g)
		}
	}
	return visible
}

// engine returns a stats engine over the current index, or nil before
// the first load.
func (m *Model) engine() *stats.Engine {
	if m.services != nil {
		return m.services.Engine()
	}
	if ix := m.state.Index(); ix != nil {
		return stats.New(ix)
	}
	return nil
}

// SetSize sets the available size for the monthly tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextGuild,
		m.keys.PrevGuild,
		m.keys.ToggleChart,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextGuild, m.keys.PrevGuild},
		{m.keys.ToggleChart, m.keys.ShowHidden},
	}
}
