package stats

import (
	"testing"
	"time"

	"github.com/roendal/guildwatch/internal/models"
)

func TestMonthlyGainInterpolated(t *testing.T) {
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}},
		DayEntries: []models.DayEntry{
			day(2026, time.January, 2, reading("Azure", 100)),
			day(2026, time.January, 30, reading("Azure", 660)),
		},
	}
	gain := New(buildIndex(t, data)).MonthlyGain("Azure", 2026, time.January)

	if !gain.Defined {
		t.Fatal("gain should be defined")
	}
	if gain.RatePerDay != 20 {
		t.Errorf("rate = %v, want 20 (560 over 28 days)", gain.RatePerDay)
	}
	// 31-day month interpolates over 30 day-to-day steps.
	if gain.InterpolatedGain != 600 {
		t.Errorf("interpolated gain = %v, want 600", gain.InterpolatedGain)
	}
	if !gain.EarliestValidDate.Equal(models.NewDate(2026, time.January, 2)) ||
		!gain.LatestValidDate.Equal(models.NewDate(2026, time.January, 30)) {
		t.Errorf("span = %v..%v", gain.EarliestValidDate, gain.LatestValidDate)
	}
}

func TestMonthlyGainUndefinedCases(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.DayEntry
		month   time.Month
	}{
		{
			// April has 30 days; earliest valid day 10 starts too late.
			"earliest too far from month start",
			[]models.DayEntry{
				day(2026, time.April, 10, reading("Azure", 100)),
				day(2026, time.April, 28, reading("Azure", 400)),
			},
			time.April,
		},
		{
			// Latest valid day 20 ends before day 23 in a 30-day month.
			"latest too far from month end",
			[]models.DayEntry{
				day(2026, time.April, 2, reading("Azure", 100)),
				day(2026, time.April, 20, reading("Azure", 400)),
			},
			time.April,
		},
		{
			"span under two weeks",
			[]models.DayEntry{
				day(2026, time.April, 20, reading("Azure", 100)),
				day(2026, time.April, 28, reading("Azure", 400)),
			},
			time.April,
		},
		{
			"no readings in month",
			[]models.DayEntry{
				day(2026, time.March, 2, reading("Azure", 100)),
				day(2026, time.May, 2, reading("Azure", 400)),
			},
			time.April,
		},
		{
			"single reading",
			[]models.DayEntry{
				day(2026, time.April, 2, reading("Azure", 100)),
			},
			time.April,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &models.GuildData{
				Guilds:     []models.Guild{{Name: "Azure"}},
				DayEntries: tt.entries,
			}
			gain := New(buildIndex(t, data)).MonthlyGain("Azure", 2026, tt.month)
			if gain.Defined {
				t.Errorf("gain should be undefined, got %+v", gain)
			}
			if gain.InterpolatedGain != 0 || gain.RatePerDay != 0 {
				t.Errorf("undefined gain must not carry derived values: %+v", gain)
			}
		})
	}
}

func TestMonths(t *testing.T) {
	data := &models.GuildData{
		Guilds: []models.Guild{{Name: "Azure"}},
		DayEntries: []models.DayEntry{
			day(2025, time.November, 20, reading("Azure", 100)),
			day(2026, time.February, 3, reading("Azure", 400)),
		},
	}
	months, err := New(buildIndex(t, data)).Months()
	if err != nil {
		t.Fatalf("Months: %v", err)
	}

	want := []models.MonthKey{
		{Year: 2025, Month: time.November},
		{Year: 2025, Month: time.December},
		{Year: 2026, Month: time.January},
		{Year: 2026, Month: time.February},
	}
	if len(months) != len(want) {
		t.Fatalf("got %d months, want %d", len(months), len(want))
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("month[%d] = %v, want %v", i, months[i], want[i])
		}
	}
}
