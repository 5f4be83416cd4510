package stats

import (
	"errors"
	"math"

	"github.com/roendal/guildwatch/internal/models"
)

// ErrInvalidComparison is returned when two summaries cannot be compared
// for an overtake projection.
var ErrInvalidComparison = errors.New("stats: summaries are not comparable")

// GuildSummaries computes headline trend figures for every guild, in the
// index's standings order.
func (e *Engine) GuildSummaries() ([]models.GuildSummary, error) {
	overallLatest, err := e.loc.LatestDate()
	if err != nil {
		return nil, err
	}

	guilds := e.ix.Guilds()
	summaries := make([]models.GuildSummary, 0, len(guilds))
	for _, g := range guilds {
		summaries = append(summaries, e.summarize(g, overallLatest))
	}
	return summaries, nil
}

func (e *Engine) summarize(g models.Guild, overallLatest models.Date) models.GuildSummary {
	s := models.GuildSummary{Guild: g}

	latest, ok := e.loc.LatestValidDate(g.Name)
	if !ok {
		return s
	}
	s.HasLatest = true
	s.LatestValidDate = latest
	s.LatestContribution, _ = e.loc.Contribution(g.Name, latest)
	if entry, ok := e.ix.Entry(latest, g.Name); ok {
		s.LatestMemberCount = entry.MemberCount
	}

	// The earlier reference is roughly one month back. When nothing
	// valid exists that far back it falls to the latest reading itself,
	// which the two-week floor below then rejects.
	earlier, ok := e.loc.OneMonthPriorValidDate(g.Name, overallLatest)
	if !ok {
		earlier = latest
	}
	s.EarlierDate = earlier
	s.EarlierContribution, _ = e.loc.Contribution(g.Name, earlier)

	// The average is trusted only when the reference is recent enough
	// relative to the dataset and far enough from the latest reading.
	windowSpan := earlier.DaysUntil(overallLatest)
	span := earlier.DaysUntil(latest)
	if windowSpan <= e.trendWindowDays && span >= minTrendSpanDays {
		s.AveragePerDay = models.N((s.LatestContribution - s.EarlierContribution) / float64(span))
	}
	return s
}

// OvertakeProjection estimates when the trailing guild catches the one
// ahead. Both summaries must carry valid latest readings on the same
// date, with behind at or below ahead, or the comparison is refused.
func (e *Engine) OvertakeProjection(behind, ahead models.GuildSummary) (models.OvertakeProjection, error) {
	if behind.Guild.Name == ahead.Guild.Name {
		return models.OvertakeProjection{}, ErrInvalidComparison
	}
	if !behind.HasLatest || !ahead.HasLatest {
		return models.OvertakeProjection{}, ErrInvalidComparison
	}
	if behind.LatestContribution > ahead.LatestContribution {
		return models.OvertakeProjection{}, ErrInvalidComparison
	}
	if !behind.LatestValidDate.Equal(ahead.LatestValidDate) {
		return models.OvertakeProjection{}, ErrInvalidComparison
	}

	p := models.OvertakeProjection{
		BehindName: behind.Guild.Name,
		AheadName:  ahead.Guild.Name,
		Gap:        ahead.LatestContribution - behind.LatestContribution,
		AsOf:       behind.LatestValidDate,
	}

	behindRate, okBehind := behind.AveragePerDay.Float()
	aheadRate, okAhead := ahead.AveragePerDay.Float()
	if !okBehind || !okAhead {
		return p, nil
	}

	ratio := p.Gap / (behindRate - aheadRate)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return p, nil
	}

	p.HasEstimate = true
	days := int(math.Ceil(ratio))
	if days <= 0 {
		return p, nil
	}
	p.WillOvertake = true
	p.Days = days
	p.OvertakeDate = p.AsOf.AddDays(days)
	p.TimeToOvertake = models.DurationBetween(p.AsOf, p.OvertakeDate)
	return p, nil
}
