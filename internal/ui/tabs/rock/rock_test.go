package rock

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roendal/guildwatch/internal/app"
	"github.com/roendal/guildwatch/internal/models"
	rocksvc "github.com/roendal/guildwatch/internal/services/rock"
)

const rockFixture = `{
	"months": [
		{
			"year": 2026, "month": 1,
			"entries": [
				{"rank": 1, "name": "Azure", "contribution": 5000},
				{"rank": 2, "name": "Crimson", "contribution": 4200}
			]
		},
		{
			"year": 2026, "month": 2,
			"entries": [
				{"rank": 1, "name": "Crimson", "contribution": 5100},
				{"rank": 2, "name": "Azure", "contribution": 5050},
				{"rank": 3, "name": "Viridian", "contribution": 900}
			]
		}
	]
}`

func loadedModel(t *testing.T) *Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rock.json")
	if err := os.WriteFile(path, []byte(rockFixture), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	svc, err := rocksvc.New(path)
	if err != nil {
		t.Fatalf("rock.New: %v", err)
	}

	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetRockIndex(svc.Index())

	m := New(state)
	m.SetSize(100, 40)
	return m
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.selectedMonth != -1 {
		t.Error("new model should track the latest month")
	}
}

func TestViewShowsLatestMonth(t *testing.T) {
	m := loadedModel(t)
	view := m.View()

	if !strings.Contains(view, "February 2026") {
		t.Errorf("view should open on the latest snapshot:\n%s", view)
	}
	if !strings.Contains(view, "Viridian") {
		t.Errorf("view missing an entry:\n%s", view)
	}
}

func TestRankDeltaColumn(t *testing.T) {
	m := loadedModel(t)
	view := m.View()

	// Crimson climbed from rank 2 to rank 1.
	if !strings.Contains(view, "▲1") {
		t.Errorf("view missing the climb marker:\n%s", view)
	}
	// Viridian was absent in January, so no delta.
	if !strings.Contains(view, "▼1") {
		t.Errorf("view missing the drop marker for Azure:\n%s", view)
	}
}

func TestMonthNavigation(t *testing.T) {
	m := loadedModel(t)
	months := m.months()
	if len(months) != 2 {
		t.Fatalf("months = %d, want 2", len(months))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if got := months[m.currentIndex(months)]; got != (models.MonthKey{Year: 2026, Month: time.January}) {
		t.Errorf("month after prev = %s, want January 2026", got)
	}
	if !strings.Contains(m.View(), "January 2026") {
		t.Error("view should render the selected month")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.selectedMonth != -1 {
		t.Error("stepping onto the last month should resume tracking the latest")
	}
}

func TestEmptyStateView(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)

	if !strings.Contains(m.View(), "No leaderboard snapshots") {
		t.Error("empty state should render a hint")
	}
}

func TestHelpBindings(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
