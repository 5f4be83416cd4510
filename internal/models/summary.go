package models

import "time"

// Trend classifies a member-count movement between two valid readings.
type Trend int

const (
	TrendNone Trend = iota
	TrendUp
	TrendDown
	TrendFlat
)

// String returns a short label for the trend.
func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	case TrendFlat:
		return "flat"
	default:
		return "none"
	}
}

// Arrow returns a single-character indicator for the trend.
func (t Trend) Arrow() string {
	switch t {
	case TrendUp:
		return "▲"
	case TrendDown:
		return "▼"
	case TrendFlat:
		return "="
	default:
		return " "
	}
}

// TableCell is one guild's column in a day row.
type TableCell struct {
	GuildName string

	// Contribution is the raw reading for the day, missing when the
	// guild has no valid contribution on this date.
	Contribution Number

	// ContributionRate is the per-day average gain since the guild's
	// previous valid contribution. Missing for the first valid reading.
	ContributionRate Number

	MemberCount Number

	// MemberDelta is the plain difference from the previous valid
	// member count, not averaged over the gap.
	MemberDelta Number
	MemberTrend Trend
}

// TableRow holds every guild's cell for one calendar day.
type TableRow struct {
	Date  Date
	Cells []TableCell
}

// MonthlyGain is the interpolated contribution gain for one guild in one
// calendar month. When the month lacks usable coverage, Defined is false
// and every derived field is meaningless.
type MonthlyGain struct {
	GuildName string
	Year      int
	Month     time.Month

	Defined              bool
	EarliestValidDate    Date
	LatestValidDate      Date
	EarliestContribution float64
	LatestContribution   float64
	RatePerDay           float64
	InterpolatedGain     float64
}

// GuildSummary is the headline trend figures for one guild.
type GuildSummary struct {
	Guild Guild

	// HasLatest is false when the guild has no valid contribution at
	// all; the remaining fields are then meaningless.
	HasLatest          bool
	LatestValidDate    Date
	LatestContribution float64
	LatestMemberCount  Number

	EarlierDate         Date
	EarlierContribution float64

	// AveragePerDay is missing when the earlier reference sits outside
	// the trend window or too close to the latest reading.
	AveragePerDay Number
}

// OvertakeProjection describes when a trailing guild would catch the
// guild ahead of it, both measured on the same latest valid date.
type OvertakeProjection struct {
	BehindName string
	AheadName  string

	Gap  float64
	AsOf Date

	// HasEstimate is false when either side lacks a usable per-day
	// average, or the gap/rate ratio is not finite. Only the gap is
	// meaningful then.
	HasEstimate bool

	WillOvertake   bool
	Days           int
	OvertakeDate   Date
	TimeToOvertake CalendarDuration
}
