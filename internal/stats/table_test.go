package stats

import (
	"testing"
	"time"

	"github.com/roendal/guildwatch/internal/dataset"
	"github.com/roendal/guildwatch/internal/models"
)

func buildIndex(t *testing.T, data *models.GuildData) *dataset.Index {
	t.Helper()
	ix, err := dataset.Build(data)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ix
}

func day(year int, month time.Month, d int, readings ...models.GuildReading) models.DayEntry {
	return models.DayEntry{Year: year, Month: month, Day: d, GuildEntries: readings}
}

func reading(name string, contribution float64) models.GuildReading {
	return models.GuildReading{Name: name, Contribution: models.N(contribution)}
}

func memberReading(name string, contribution, members float64) models.GuildReading {
	return models.GuildReading{
		Name:         name,
		Contribution: models.N(contribution),
		MemberCount:  models.N(members),
	}
}

func cellFor(t *testing.T, row models.TableRow, guild string) models.TableCell {
	t.Helper()
	for _, c := range row.Cells {
		if c.GuildName == guild {
			return c
		}
	}
	t.Fatalf("no cell for %s on %s", guild, row.Date)
	return models.TableCell{}
}

func TestTableRowsAveragedRate(t *testing.T) {
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}},
		DayEntries: []models.DayEntry{
			day(2026, time.January, 3, reading("Azure", 1000)),
			day(2026, time.January, 7, reading("Azure", 1200)),
		},
	}
	rows, err := New(buildIndex(t, data)).TableRows()
	if err != nil {
		t.Fatalf("TableRows: %v", err)
	}

	// One row per calendar day, oldest first, gap days included.
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	if !rows[0].Date.Equal(models.NewDate(2026, time.January, 3)) {
		t.Errorf("first row date = %v, want Jan 3", rows[0].Date)
	}

	first := cellFor(t, rows[0], "Azure")
	if first.ContributionRate.Valid {
		t.Error("first valid reading should have no rate")
	}

	last := cellFor(t, rows[4], "Azure")
	rate, ok := last.ContributionRate.Float()
	if !ok || rate != 50 {
		t.Errorf("rate = %v, %v, want 50 over the 4-day gap", rate, ok)
	}

	// The gap day between readings carries no contribution.
	if cellFor(t, rows[2], "Azure").Contribution.Valid {
		t.Error("day without an entry should have a missing contribution")
	}
}

func TestTableRowsZeroReadingIsValid(t *testing.T) {
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}},
		DayEntries: []models.DayEntry{
			day(2026, time.January, 1, reading("Azure", 100)),
			day(2026, time.January, 3, reading("Azure", 0)),
			day(2026, time.January, 5, reading("Azure", 50)),
		},
	}
	rows, err := New(buildIndex(t, data)).TableRows()
	if err != nil {
		t.Fatalf("TableRows: %v", err)
	}

	zeroDay := cellFor(t, rows[2], "Azure")
	if !zeroDay.Contribution.Valid || zeroDay.Contribution.Value != 0 {
		t.Fatalf("zero reading should be valid, got %+v", zeroDay.Contribution)
	}
	if rate, ok := zeroDay.ContributionRate.Float(); !ok || rate != -50 {
		t.Errorf("rate into zero day = %v, %v, want -50", rate, ok)
	}

	// The zero reading also anchors the next rate.
	lastDay := cellFor(t, rows[4], "Azure")
	if rate, ok := lastDay.ContributionRate.Float(); !ok || rate != 25 {
		t.Errorf("rate after zero day = %v, %v, want 25", rate, ok)
	}
}

func TestTableRowsMemberTrend(t *testing.T) {
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}},
		DayEntries: []models.DayEntry{
			day(2026, time.January, 1, memberReading("Azure", 100, 28)),
			day(2026, time.January, 2, memberReading("Azure", 110, 30)),
			day(2026, time.January, 3, memberReading("Azure", 120, 30)),
			day(2026, time.January, 4, memberReading("Azure", 130, 27)),
		},
	}
	rows, err := New(buildIndex(t, data)).TableRows()
	if err != nil {
		t.Fatalf("TableRows: %v", err)
	}

	tests := []struct {
		row   int
		delta float64
		trend models.Trend
		valid bool
	}{
		{0, 0, models.TrendNone, false},
		{1, 2, models.TrendUp, true},
		{2, 0, models.TrendFlat, true},
		{3, -3, models.TrendDown, true},
	}
	for _, tt := range tests {
		cell := cellFor(t, rows[tt.row], "Azure")
		if cell.MemberTrend != tt.trend {
			t.Errorf("row %d trend = %v, want %v", tt.row, cell.MemberTrend, tt.trend)
		}
		delta, ok := cell.MemberDelta.Float()
		if ok != tt.valid || (ok && delta != tt.delta) {
			t.Errorf("row %d delta = %v, %v, want %v, %v", tt.row, delta, ok, tt.delta, tt.valid)
		}
	}
}

func TestTableRowsEmptyDataset(t *testing.T) {
	ix := buildIndex(t, &models.GuildData{Guilds: []models.Guild{{Name: "Azure"}}})
	if _, err := New(ix).TableRows(); err == nil {
		t.Fatal("want error for empty dataset")
	}
}
