// Package stats derives table rows, monthly gains and trend summaries
// from a built dataset index.
package stats

import (
	"github.com/roendal/guildwatch/internal/dataset"
)

const (
	// DefaultTrendWindowWeeks bounds how stale the earlier reference
	// reading may be, relative to the newest entry in the whole
	// dataset, before a per-day average is discarded.
	DefaultTrendWindowWeeks = 6

	// minTrendSpanDays is the floor under which an average would be
	// dominated by day-to-day noise.
	minTrendSpanDays = 14

	// monthEdgeDays is how close to the month edges the earliest and
	// latest readings must sit for a monthly gain to be representative.
	monthEdgeDays = 7
)

// Engine computes derived statistics over one index. It holds no state
// beyond its inputs, so a fresh engine per loaded dataset is cheap.
type Engine struct {
	ix              *dataset.Index
	loc             *dataset.Locator
	trendWindowDays int
}

// New returns an engine with the default trend window.
func New(ix *dataset.Index) *Engine {
	return NewWithTrendWindow(ix, DefaultTrendWindowWeeks)
}

// NewWithTrendWindow returns an engine whose trend window spans the
// given number of weeks. Non-positive values fall back to the default.
func NewWithTrendWindow(ix *dataset.Index, weeks int) *Engine {
	if weeks <= 0 {
		weeks = DefaultTrendWindowWeeks
	}
	return &Engine{
		ix:              ix,
		loc:             dataset.NewLocator(ix),
		trendWindowDays: weeks * 7,
	}
}

// Index returns the engine's underlying index.
func (e *Engine) Index() *dataset.Index { return e.ix }

// Locator returns the engine's locator.
func (e *Engine) Locator() *dataset.Locator { return e.loc }
