package table

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roendal/guildwatch/internal/app"
	"github.com/roendal/guildwatch/internal/dataset"
	"github.com/roendal/guildwatch/internal/models"
	"github.com/roendal/guildwatch/internal/stats"
)

func loadedModel(t *testing.T) *Model {
	t.Helper()
	data := &models.GuildData{
		Guilds: []models.Guild{
			{Name: "Azure", Visible: true},
			{Name: "Crimson", Visible: true},
		},
		DayEntries: []models.DayEntry{
			{Year: 2026, Month: time.January, Day: 3, GuildEntries: []models.GuildReading{
				{Name: "Azure", Contribution: models.N(1000)},
				{Name: "Crimson", Contribution: models.N(1100)},
			}},
			{Year: 2026, Month: time.January, Day: 5, GuildEntries: []models.GuildReading{
				{Name: "Azure", Contribution: models.N(1200)},
				{Name: "Crimson", Contribution: models.N(1150)},
			}},
		},
	}
	ix, err := dataset.Build(data)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	summaries, err := stats.New(ix).GuildSummaries()
	if err != nil {
		t.Fatalf("GuildSummaries: %v", err)
	}

	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetDataset(ix, summaries)

	m := New(state, nil)
	m.SetSize(120, 40)
	m.Update(app.DatasetLoadedMsg{Index: ix, Summaries: summaries})
	return m
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
	if !m.newestFirst {
		t.Error("default order should be newest first")
	}
}

func TestRowsCoverEveryCalendarDay(t *testing.T) {
	m := loadedModel(t)
	// Jan 3 through Jan 5 inclusive.
	if len(m.rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.rows))
	}
}

func TestOrderedRowsNewestFirst(t *testing.T) {
	m := loadedModel(t)

	rows := m.orderedRows()
	if !rows[0].Date.Equal(models.NewDate(2026, time.January, 5)) {
		t.Errorf("first row = %s, want 05 Jan", rows[0].Date)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	rows = m.orderedRows()
	if !rows[0].Date.Equal(models.NewDate(2026, time.January, 3)) {
		t.Errorf("first row after toggle = %s, want 03 Jan", rows[0].Date)
	}
}

func TestViewRendersGuildsAndRates(t *testing.T) {
	m := loadedModel(t)
	view := m.View()

	if !strings.Contains(view, "Azure") || !strings.Contains(view, "Crimson") {
		t.Errorf("view missing guild columns:\n%s", view)
	}
	// Azure gained 200 over 2 days.
	if !strings.Contains(view, "+100.0/d") {
		t.Errorf("view missing per-day rate:\n%s", view)
	}
	// The gap day renders a placeholder.
	if !strings.Contains(view, "04 Jan 2026") {
		t.Errorf("view missing the empty day row:\n%s", view)
	}
}

func TestEmptyStateView(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	m := New(state, nil)
	m.SetSize(80, 24)

	if !strings.Contains(m.View(), "No day entries") {
		t.Error("empty state should render a hint")
	}
}

func TestHelpBindings(t *testing.T) {
	m := New(app.NewState(), nil)
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
