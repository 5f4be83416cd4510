package stats

import (
	"time"

	"github.com/roendal/guildwatch/internal/models"
)

// MonthlyGain estimates how much the guild gained over one calendar
// month. The earliest and latest valid readings inside the month must
// cover at least two weeks and sit within a week of the month edges;
// otherwise the month is reported undefined rather than guessed at.
// The gain is the span's per-day rate interpolated across the month.
func (e *Engine) MonthlyGain(guild string, year int, month time.Month) models.MonthlyGain {
	gain := models.MonthlyGain{GuildName: guild, Year: year, Month: month}

	daysInMonth := models.DaysInMonth(year, month)
	first := models.NewDate(year, month, 1)
	last := models.NewDate(year, month, daysInMonth)

	earliest, okEarliest := e.firstValidInRange(guild, first, last)
	latest, okLatest := e.loc.NearestValidAtOrBefore(guild, last, first)
	if !okEarliest || !okLatest {
		return gain
	}
	if latest.Before(earliest) {
		return gain
	}
	span := earliest.DaysUntil(latest)
	if span < minTrendSpanDays {
		return gain
	}
	if earliest.Day > monthEdgeDays || latest.Day < daysInMonth-monthEdgeDays {
		return gain
	}

	earliestContribution, _ := e.loc.Contribution(guild, earliest)
	latestContribution, _ := e.loc.Contribution(guild, latest)

	gain.Defined = true
	gain.EarliestValidDate = earliest
	gain.LatestValidDate = latest
	gain.EarliestContribution = earliestContribution
	gain.LatestContribution = latestContribution
	gain.RatePerDay = (latestContribution - earliestContribution) / float64(span)
	gain.InterpolatedGain = float64(daysInMonth-1) * gain.RatePerDay
	return gain
}

// firstValidInRange scans forward from first to last for the guild's
// first valid contribution.
func (e *Engine) firstValidInRange(guild string, first, last models.Date) (models.Date, bool) {
	for d := first; !d.After(last); d = d.AddDays(1) {
		if _, ok := e.loc.Contribution(guild, d); ok {
			return d, true
		}
	}
	return models.Date{}, false
}

// Months lists every calendar month touched by the dataset, oldest
// first.
func (e *Engine) Months() ([]models.MonthKey, error) {
	earliest, err := e.loc.EarliestDate()
	if err != nil {
		return nil, err
	}
	latest, err := e.loc.LatestDate()
	if err != nil {
		return nil, err
	}

	var months []models.MonthKey
	end := models.MonthOf(latest)
	for m := models.MonthOf(earliest); ; m = m.Next() {
		months = append(months, m)
		if m == end {
			break
		}
	}
	return months, nil
}

// MonthlyGains computes the gain for one guild across every month the
// dataset touches.
func (e *Engine) MonthlyGains(guild string) ([]models.MonthlyGain, error) {
	months, err := e.Months()
	if err != nil {
		return nil, err
	}
	gains := make([]models.MonthlyGain, 0, len(months))
	for _, m := range months {
		gains = append(gains, e.MonthlyGain(guild, m.Year, m.Month))
	}
	return gains, nil
}
