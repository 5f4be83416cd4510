package dataset

import (
	"testing"
	"time"

	"github.com/roendal/guildwatch/internal/models"
)

func sparseData() *models.GuildData {
	// Azure has valid readings on Jan 3 and Jan 7 only; the Jan 5 entry
	// records Azure with a missing contribution.
	return &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}, {Name: "Crimson"}},
		DayEntries: []models.DayEntry{
			day(2026, time.January, 3, reading("Azure", 1000)),
			{Year: 2026, Month: time.January, Day: 5, GuildEntries: []models.GuildReading{
				{Name: "Azure"},
				reading("Crimson", 700),
			}},
			day(2026, time.January, 7, reading("Azure", 1200)),
		},
	}
}

func sparseLocator(t *testing.T) *Locator {
	t.Helper()
	ix, err := Build(sparseData())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return NewLocator(ix)
}

func TestValidDateBounds(t *testing.T) {
	loc := sparseLocator(t)

	if d, ok := loc.EarliestValidDate("Azure"); !ok || !d.Equal(models.NewDate(2026, time.January, 3)) {
		t.Errorf("EarliestValidDate = %v, %v", d, ok)
	}
	if d, ok := loc.LatestValidDate("Azure"); !ok || !d.Equal(models.NewDate(2026, time.January, 7)) {
		t.Errorf("LatestValidDate = %v, %v", d, ok)
	}
	if d, ok := loc.LatestValidDate("Crimson"); !ok || !d.Equal(models.NewDate(2026, time.January, 5)) {
		t.Errorf("Crimson LatestValidDate = %v, %v", d, ok)
	}
	if _, ok := loc.EarliestValidDate("Nobody"); ok {
		t.Error("unknown guild should have no valid dates")
	}
}

func TestNearestValidAtOrBeforeSkipsMissingReadings(t *testing.T) {
	loc := sparseLocator(t)

	// Scanning back from Jan 6 must skip Jan 5 (recorded but missing)
	// and land on Jan 3.
	start := models.NewDate(2026, time.January, 6)
	floor := models.NewDate(2026, time.January, 1)
	d, ok := loc.NearestValidAtOrBefore("Azure", start, floor)
	if !ok || !d.Equal(models.NewDate(2026, time.January, 3)) {
		t.Errorf("NearestValidAtOrBefore = %v, %v, want Jan 3", d, ok)
	}

	// The floor bounds the scan.
	_, ok = loc.NearestValidAtOrBefore("Azure", start, models.NewDate(2026, time.January, 4))
	if ok {
		t.Error("scan should stop at the floor without finding anything")
	}
}

func TestPreviousValidDateStartsDayBefore(t *testing.T) {
	loc := sparseLocator(t)

	d, ok := loc.PreviousValidDate("Azure", models.NewDate(2026, time.January, 7))
	if !ok || !d.Equal(models.NewDate(2026, time.January, 3)) {
		t.Errorf("PreviousValidDate = %v, %v, want Jan 3", d, ok)
	}

	// Nothing valid before the guild's first valid date.
	if _, ok := loc.PreviousValidDate("Azure", models.NewDate(2026, time.January, 3)); ok {
		t.Error("no previous valid date before the earliest one")
	}
}

func TestOneMonthPriorBoundedByEarliest(t *testing.T) {
	loc := sparseLocator(t)

	// One month before Jan 7 is Dec 7, before Azure's earliest valid
	// date, so the bounded scan finds nothing.
	if _, ok := loc.OneMonthPriorValidDate("Azure", models.NewDate(2026, time.January, 7)); ok {
		t.Error("scan bounded by earliest valid date should find nothing")
	}
}

func TestOneMonthPriorFindsNearest(t *testing.T) {
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}},
		DayEntries: []models.DayEntry{
			day(2025, time.December, 1, reading("Azure", 500)),
			day(2025, time.December, 20, reading("Azure", 800)),
			day(2026, time.January, 25, reading("Azure", 1500)),
		},
	}
	ix, err := Build(data)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	loc := NewLocator(ix)

	// One month before Jan 25 is Dec 25; the nearest valid reading at
	// or before that is Dec 20.
	d, ok := loc.OneMonthPriorValidDate("Azure", models.NewDate(2026, time.January, 25))
	if !ok || !d.Equal(models.NewDate(2025, time.December, 20)) {
		t.Errorf("OneMonthPriorValidDate = %v, %v, want Dec 20", d, ok)
	}
}

func TestContributionExtremes(t *testing.T) {
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}, {Name: "Ghost"}},
		DayEntries: []models.DayEntry{
			day(2026, time.February, 1, reading("Azure", 300)),
			day(2026, time.February, 2, reading("Azure", 0)),
			day(2026, time.February, 3, reading("Azure", 900)),
		},
	}
	ix, err := Build(data)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	loc := NewLocator(ix)

	if v, ok := loc.LowestContribution("Azure"); !ok || v != 0 {
		t.Errorf("LowestContribution = %v, %v, want 0", v, ok)
	}
	if v, ok := loc.HighestContribution("Azure"); !ok || v != 900 {
		t.Errorf("HighestContribution = %v, %v, want 900", v, ok)
	}
	if _, ok := loc.LowestContribution("Ghost"); ok {
		t.Error("guild with no readings has no extremes")
	}
}
