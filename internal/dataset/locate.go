package dataset

import "github.com/roendal/guildwatch/internal/models"

// Locator answers "which day actually has a usable reading" questions
// against an index. Scans walk day by day, which is fine at the scale of
// a few years of entries and keeps boundary handling obvious.
type Locator struct {
	ix *Index
}

// NewLocator returns a locator over the given index.
func NewLocator(ix *Index) *Locator {
	return &Locator{ix: ix}
}

// EarliestDate returns the oldest recorded date.
func (l *Locator) EarliestDate() (models.Date, error) {
	if len(l.ix.dates) == 0 || len(l.ix.guilds) == 0 {
		return models.Date{}, ErrEmptyDataset
	}
	return l.ix.dates[len(l.ix.dates)-1], nil
}

// LatestDate returns the most recent recorded date.
func (l *Locator) LatestDate() (models.Date, error) {
	if len(l.ix.dates) == 0 || len(l.ix.guilds) == 0 {
		return models.Date{}, ErrEmptyDataset
	}
	return l.ix.dates[0], nil
}

// validContribution returns the guild's contribution on the date if the
// pair exists and the reading is present. Zero is a valid reading.
func (l *Locator) validContribution(guild string, date models.Date) (float64, bool) {
	e, ok := l.ix.Entry(date, guild)
	if !ok || !e.Contribution.Valid {
		return 0, false
	}
	return e.Contribution.Value, true
}

// EarliestValidDate returns the first date with a valid contribution for
// the guild.
func (l *Locator) EarliestValidDate(guild string) (models.Date, bool) {
	for i := len(l.ix.dates) - 1; i >= 0; i-- {
		if _, ok := l.validContribution(guild, l.ix.dates[i]); ok {
			return l.ix.dates[i], true
		}
	}
	return models.Date{}, false
}

// LatestValidDate returns the most recent date with a valid contribution
// for the guild.
func (l *Locator) LatestValidDate(guild string) (models.Date, bool) {
	for _, d := range l.ix.dates {
		if _, ok := l.validContribution(guild, d); ok {
			return d, true
		}
	}
	return models.Date{}, false
}

// NearestValidAtOrBefore walks backward from start, one day at a time,
// until it finds a valid contribution for the guild. The scan stops once
// it would pass notBefore.
func (l *Locator) NearestValidAtOrBefore(guild string, start, notBefore models.Date) (models.Date, bool) {
	for d := start; !d.Before(notBefore); d = d.AddDays(-1) {
		if _, ok := l.validContribution(guild, d); ok {
			return d, true
		}
	}
	return models.Date{}, false
}

// PreviousValidDate returns the nearest valid contribution date strictly
// before base, bounded by the guild's own earliest valid date.
func (l *Locator) PreviousValidDate(guild string, base models.Date) (models.Date, bool) {
	earliest, ok := l.EarliestValidDate(guild)
	if !ok {
		return models.Date{}, false
	}
	return l.NearestValidAtOrBefore(guild, base.AddDays(-1), earliest)
}

// OneMonthPriorValidDate returns the valid contribution date nearest to
// one calendar month before latest, scanning backward and never past the
// guild's earliest valid date.
func (l *Locator) OneMonthPriorValidDate(guild string, latest models.Date) (models.Date, bool) {
	earliest, ok := l.EarliestValidDate(guild)
	if !ok {
		return models.Date{}, false
	}
	return l.NearestValidAtOrBefore(guild, latest.AddMonths(-1), earliest)
}

// Contribution returns the guild's valid contribution on the date.
func (l *Locator) Contribution(guild string, date models.Date) (float64, bool) {
	return l.validContribution(guild, date)
}

// LowestContribution returns the smallest valid contribution the guild
// ever recorded. Used for chart axis scaling.
func (l *Locator) LowestContribution(guild string) (float64, bool) {
	lowest, found := 0.0, false
	for _, d := range l.ix.dates {
		if v, ok := l.validContribution(guild, d); ok && (!found || v < lowest) {
			lowest, found = v, true
		}
	}
	return lowest, found
}

// HighestContribution returns the largest valid contribution the guild
// ever recorded.
func (l *Locator) HighestContribution(guild string) (float64, bool) {
	highest, found := 0.0, false
	for _, d := range l.ix.dates {
		if v, ok := l.validContribution(guild, d); ok && (!found || v > highest) {
			highest, found = v, true
		}
	}
	return highest, found
}
