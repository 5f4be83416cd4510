// Package standings provides the standings tab with per-guild trend cards.
package standings

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roendal/guildwatch/internal/app"
	"github.com/roendal/guildwatch/internal/models"
	"github.com/roendal/guildwatch/internal/services"
	"github.com/roendal/guildwatch/internal/stats"
	"github.com/roendal/guildwatch/internal/ui/components"
)

// keyMap defines the key bindings specific to the standings tab.
type keyMap struct {
	NextGuild   key.Binding
	PrevGuild   key.Binding
	FirstGuild  key.Binding
	LastGuild   key.Binding
	ShowHidden  key.Binding
	ToggleChart key.Binding
}

// defaultKeyMap returns the default key bindings for the standings tab.
func defaultKeyMap() keyMap {
	return keyMap{
		NextGuild: key.NewBinding(
			key.WithKeys("n", "j", "down"),
			key.WithHelp("j/n", "next guild"),
		),
		PrevGuild: key.NewBinding(
			key.WithKeys("p", "k", "up"),
			key.WithHelp("k/p", "prev guild"),
		),
		FirstGuild: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first guild"),
		),
		LastGuild: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last guild"),
		),
		ShowHidden: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle hidden guilds"),
		),
		ToggleChart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle chart"),
		),
	}
}

// Model represents the standings tab state.
type Model struct {
	state         *app.State
	services      *services.Manager
	spinner       components.LoadingSpinner
	keys          keyMap
	viewport      viewport.Model
	width         int
	height        int
	selectedIndex int
	showHidden    bool
	showChart     bool
}

// New creates a new standings model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:     state,
		services:  svc,
		spinner:   components.NewSpinner("Loading guild data..."),
		keys:      defaultKeyMap(),
		viewport:  viewport.New(0, 0),
		showChart: true,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.DatasetLoadedMsg:
		m.clampSelection()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	count := len(m.visibleSummaries())

	switch {
	case key.Matches(msg, m.keys.NextGuild):
		if count > 0 {
			m.selectedIndex = (m.selectedIndex + 1) % count
		}
	case key.Matches(msg, m.keys.PrevGuild):
		if count > 0 {
			m.selectedIndex = (m.selectedIndex - 1 + count) % count
		}
	case key.Matches(msg, m.keys.FirstGuild):
		if count > 0 {
			m.selectedIndex = 0
		}
	case key.Matches(msg, m.keys.LastGuild):
		if count > 0 {
			m.selectedIndex = count - 1
		}
	case key.Matches(msg, m.keys.ShowHidden):
		m.showHidden = !m.showHidden
		m.clampSelection()
	case key.Matches(msg, m.keys.ToggleChart):
		m.showChart = !m.showChart
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) clampSelection() {
	count := len(m.visibleSummaries())
	if count == 0 {
		m.selectedIndex = 0
		return
	}
	if m.selectedIndex >= count {
		m.selectedIndex = count - 1
	}
}

// visibleSummaries returns the summaries shown in standings order,
// filtering guilds flagged as hidden unless the toggle is on.
func (m *Model) visibleSummaries() []models.GuildSummary {
	all := m.state.Summaries()
	if m.showHidden {
		return all
	}
	visible := make([]models.GuildSummary, 0, len(all))
	for _, s := range all {
		if s.Guild.Visible {
			visible = append(visible, s)
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

// SetSize sets the available size for the standings tab.
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
		m.keys.ShowHidden,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextGuild, m.keys.PrevGuild},
		{m.keys.FirstGuild, m.keys.LastGuild},
		{m.keys.ToggleChart, m.keys.ShowHidden},
	}
}
