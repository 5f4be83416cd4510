package info

import (
	"strings"
	"testing"
	"time"

	"github.com/roendal/guildwatch/internal/app"
	"github.com/roendal/guildwatch/internal/config"
	"github.com/roendal/guildwatch/internal/dataset"
	"github.com/roendal/guildwatch/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		GuildDataPath:    "data/guildData.json",
		RockDataPath:     "",
		DatabasePath:     "guildwatch.db",
		TrendWindowWeeks: 6,
		RefreshInterval:  30 * time.Second,
		NotifyLeadChange: true,
	}
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), nil, testConfig())
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestViewShowsConfig(t *testing.T) {
	m := New(app.NewState(), nil, testConfig())
	m.SetSize(100, 40)
	view := m.View()

	if !strings.Contains(view, "data/guildData.json") {
		t.Errorf("view missing the guild data path:\n%s", view)
	}
	if !strings.Contains(view, "6 weeks") {
		t.Errorf("view missing the trend window:\n%s", view)
	}
	if !strings.Contains(view, "disabled") {
		t.Errorf("an empty rock path should render as disabled:\n%s", view)
	}
}

func TestViewShowsDatasetFigures(t *testing.T) {
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure", Visible: true}},
		DayEntries: []models.DayEntry{
			{Year: 2026, Month: time.March, Day: 1, GuildEntries: []models.GuildReading{
				{Name: "Azure", Contribution: models.N(100)},
			}},
		},
	}
	ix, err := dataset.Build(data)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetDataset(ix, nil)

	m := New(state, nil, testConfig())
	m.SetSize(100, 40)
	view := m.View()

	if !strings.Contains(view, "Recorded days") {
		t.Errorf("view missing the dataset card:\n%s", view)
	}
	if !strings.Contains(view, "Last loaded") {
		t.Errorf("view missing the load timestamp:\n%s", view)
	}
}

func TestNilConfigView(t *testing.T) {
	m := New(app.NewState(), nil, nil)
	m.SetSize(80, 24)

	if !strings.Contains(m.View(), "No configuration loaded") {
		t.Error("nil config should render a placeholder card")
	}
}

func TestHelpBindings(t *testing.T) {
	m := New(app.NewState(), nil, testConfig())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
