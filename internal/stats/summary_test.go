package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/roendal/guildwatch/internal/models"
)

func summaryFor(t *testing.T, summaries []models.GuildSummary, name string) models.GuildSummary {
	t.Helper()
	for _, s := range summaries {
		if s.Guild.Name == name {
			return s
		}
	}
	t.Fatalf("no summary for %s", name)
	return models.GuildSummary{}
}

func TestGuildSummariesAverage(t *testing.T) {
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}},
		DayEntries: []models.DayEntry{
			day(2025, time.December, 31, reading("Azure", 1000)),
			day(2026, time.January, 31, reading("Azure", 4100)),
		},
	}
	summaries, err := New(buildIndex(t, data)).GuildSummaries()
	if err != nil {
		t.Fatalf("GuildSummaries: %v", err)
	}

	s := summaryFor(t, summaries, "Azure")
	if !s.HasLatest || s.LatestContribution != 4100 {
		t.Fatalf("latest = %+v", s)
	}
	if !s.EarlierDate.Equal(models.NewDate(2025, time.December, 31)) {
		t.Errorf("earlier date = %v, want Dec 31", s.EarlierDate)
	}
	avg, ok := s.AveragePerDay.Float()
	if !ok || avg != 100 {
		t.Errorf("average = %v, %v, want 100 (3100 over 31 days)", avg, ok)
	}
}

func TestGuildSummariesTwoWeekFloor(t *testing.T) {
	// All readings inside the last ten days: the one-month-prior scan
	// finds nothing before the earliest valid date, falls back to the
	// latest reading, and the short span discards the average.
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}},
		DayEntries: []models.DayEntry{
			day(2026, time.January, 25, reading("Azure", 100)),
			day(2026, time.January, 31, reading("Azure", 400)),
		},
	}
	summaries, err := New(buildIndex(t, data)).GuildSummaries()
	if err != nil {
		t.Fatalf("GuildSummaries: %v", err)
	}

	s := summaryFor(t, summaries, "Azure")
	if !s.HasLatest {
		t.Fatal("latest reading should exist")
	}
	if s.AveragePerDay.Valid {
		t.Errorf("average over %v..%v should be discarded", s.EarlierDate, s.LatestValidDate)
	}
}

func TestGuildSummariesStaleGuildDiscarded(t *testing.T) {
	// Crimson stopped reporting months before the dataset's newest
	// entry, so its earlier reference is far outside the trend window.
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}, {Name: "Crimson"}},
		DayEntries: []models.DayEntry{
			day(2025, time.November, 1, reading("Crimson", 100)),
			day(2025, time.November, 20, reading("Crimson", 500)),
			day(2025, time.December, 31, reading("Azure", 1000)),
			day(2026, time.January, 31, reading("Azure", 4100)),
		},
	}
	summaries, err := New(buildIndex(t, data)).GuildSummaries()
	if err != nil {
		t.Fatalf("GuildSummaries: %v", err)
	}

	crimson := summaryFor(t, summaries, "Crimson")
	if !crimson.HasLatest || crimson.LatestContribution != 500 {
		t.Fatalf("latest = %+v", crimson)
	}
	if crimson.AveragePerDay.Valid {
		t.Error("stale guild's average should be discarded")
	}

	azure := summaryFor(t, summaries, "Azure")
	if !azure.AveragePerDay.Valid {
		t.Error("fresh guild's average should survive")
	}
}

func TestGuildSummariesTrendWindowOverride(t *testing.T) {
	// The earlier reference sits 45 days before the newest entry,
	// beyond the default six-week window but inside a seven-week one.
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}},
		DayEntries: []models.DayEntry{
			day(2025, time.December, 17, reading("Azure", 500)),
			day(2026, time.January, 31, reading("Azure", 950)),
		},
	}
	ix := buildIndex(t, data)

	defaults, err := New(ix).GuildSummaries()
	if err != nil {
		t.Fatalf("GuildSummaries: %v", err)
	}
	if summaryFor(t, defaults, "Azure").AveragePerDay.Valid {
		t.Error("45-day-old reference should fail the default window")
	}

	widened, err := NewWithTrendWindow(ix, 7).GuildSummaries()
	if err != nil {
		t.Fatalf("GuildSummaries: %v", err)
	}
	avg, ok := summaryFor(t, widened, "Azure").AveragePerDay.Float()
	if !ok || avg != 10 {
		t.Errorf("average = %v, %v, want 10 (450 over 45 days)", avg, ok)
	}
}

func TestGuildSummariesNoValidReadings(t *testing.T) {
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}, {Name: "Ghost"}},
		DayEntries: []models.DayEntry{
			day(2026, time.January, 31, reading("Azure", 100)),
		},
	}
	summaries, err := New(buildIndex(t, data)).GuildSummaries()
	if err != nil {
		t.Fatalf("GuildSummaries: %v", err)
	}

	ghost := summaryFor(t, summaries, "Ghost")
	if ghost.HasLatest || ghost.AveragePerDay.Valid {
		t.Errorf("guild without readings must stay empty: %+v", ghost)
	}
}

func overtakeFixture(t *testing.T) *Engine {
	t.Helper()
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}},
		DayEntries: []models.DayEntry{
			day(2026, time.January, 31, reading("Azure", 1)),
		},
	}
	return New(buildIndex(t, data))
}

func withAverage(name string, latest float64, date models.Date, avg models.Number) models.GuildSummary {
	return models.GuildSummary{
		Guild:              models.Guild{Name: name},
		HasLatest:          true,
		LatestValidDate:    date,
		LatestContribution: latest,
		AveragePerDay:      avg,
	}
}

func TestOvertakeProjection(t *testing.T) {
	e := overtakeFixture(t)
	asOf := models.NewDate(2026, time.January, 31)

	behind := withAverage("Azure", 9000, asOf, models.N(150))
	ahead := withAverage("Crimson", 10000, asOf, models.N(50))

	p, err := e.OvertakeProjection(behind, ahead)
	if err != nil {
		t.Fatalf("OvertakeProjection: %v", err)
	}
	if p.Gap != 1000 {
		t.Errorf("gap = %v, want 1000", p.Gap)
	}
	if !p.HasEstimate || !p.WillOvertake {
		t.Fatalf("want an overtaking estimate, got %+v", p)
	}
	if p.Days != 10 {
		t.Errorf("days = %d, want 10 (1000 / 100)", p.Days)
	}
	if !p.OvertakeDate.Equal(models.NewDate(2026, time.February, 10)) {
		t.Errorf("overtake date = %v, want Feb 10", p.OvertakeDate)
	}
	if p.TimeToOvertake.String() != "10 days" {
		t.Errorf("duration = %q", p.TimeToOvertake)
	}
}

func TestOvertakeProjectionNegativeCeilBoundary(t *testing.T) {
	// The trailing guild is losing ground: the ratio is negative and
	// its ceiling is exactly zero, which must read as "will not
	// overtake", never as "overtakes today".
	e := overtakeFixture(t)
	asOf := models.NewDate(2026, time.January, 31)

	behind := withAverage("Azure", 1000000, asOf, models.N(-110000.0))
	ahead := withAverage("Crimson", 1164005, asOf, models.N(107629.51))

	p, err := e.OvertakeProjection(behind, ahead)
	if err != nil {
		t.Fatalf("OvertakeProjection: %v", err)
	}
	if ratio := p.Gap / (-110000.0 - 107629.51); math.Ceil(ratio) != 0 {
		t.Fatalf("fixture drift: ceil(%v) != 0", ratio)
	}
	if !p.HasEstimate {
		t.Fatal("finite ratio should yield an estimate")
	}
	if p.WillOvertake {
		t.Error("non-positive day count means no overtake")
	}
	if p.Days != 0 || !p.OvertakeDate.IsZero() {
		t.Errorf("no-overtake projection must not carry a date: %+v", p)
	}
}

func TestOvertakeProjectionGapOnly(t *testing.T) {
	e := overtakeFixture(t)
	asOf := models.NewDate(2026, time.January, 31)

	tests := []struct {
		name   string
		behind models.GuildSummary
		ahead  models.GuildSummary
	}{
		{
			"missing rate",
			withAverage("Azure", 900, asOf, models.Number{}),
			withAverage("Crimson", 1000, asOf, models.N(50)),
		},
		{
			"equal rates divide to infinity",
			withAverage("Azure", 900, asOf, models.N(50)),
			withAverage("Crimson", 1000, asOf, models.N(50)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := e.OvertakeProjection(tt.behind, tt.ahead)
			if err != nil {
				t.Fatalf("OvertakeProjection: %v", err)
			}
			if p.HasEstimate {
				t.Errorf("want gap-only result, got %+v", p)
			}
			if p.Gap != 100 {
				t.Errorf("gap = %v, want 100", p.Gap)
			}
		})
	}
}

func TestOvertakeProjectionInvalidComparisons(t *testing.T) {
	e := overtakeFixture(t)
	asOf := models.NewDate(2026, time.January, 31)
	other := models.NewDate(2026, time.January, 30)

	tests := []struct {
		name   string
		behind models.GuildSummary
		ahead  models.GuildSummary
	}{
		{
			"same guild",
			withAverage("Azure", 900, asOf, models.N(1)),
			withAverage("Azure", 900, asOf, models.N(1)),
		},
		{
			"behind is actually ahead",
			withAverage("Azure", 2000, asOf, models.N(1)),
			withAverage("Crimson", 1000, asOf, models.N(1)),
		},
		{
			"different latest dates",
			withAverage("Azure", 900, other, models.N(1)),
			withAverage("Crimson", 1000, asOf, models.N(1)),
		},
		{
			"no latest reading",
			models.GuildSummary{Guild: models.Guild{Name: "Azure"}},
			withAverage("Crimson", 1000, asOf, models.N(1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.OvertakeProjection(tt.behind, tt.ahead); !errors.Is(err, ErrInvalidComparison) {
				t.Fatalf("want ErrInvalidComparison, got %v", err)
			}
		})
	}
}
