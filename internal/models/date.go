package models

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date with value semantics. All arithmetic is done on
// UTC midnights so daylight-saving shifts can never change a day count.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for the given calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return Date{Year: u.Year(), Month: u.Month(), Day: u.Day()}
}

// Time returns the date as a UTC midnight.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Compare returns -1, 0 or 1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool { return d.Compare(o) == 0 }

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddMonths shifts the date by n calendar months, clamping the day to the
// last day of the target month. March 31 minus one month is February 28,
// not March 3.
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	day := d.Day
	if max := DaysInMonth(first.Year(), first.Month()); day > max {
		day = max
	}
	return Date{Year: first.Year(), Month: first.Month(), Day: day}
}

// DaysUntil returns the number of days from d to o. Negative when o is
// earlier than d.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

// DaysInMonth returns the length of the date's month.
func (d Date) DaysInMonth() int {
	return DaysInMonth(d.Year, d.Month)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// String formats the date like "07 Jan 2026".
func (d Date) String() string {
	return d.Time().Format("02 Jan 2006")
}

// ISO formats the date as "2026-01-07", the form used for storage keys.
func (d Date) ISO() string {
	return d.Time().Format("2006-01-02")
}

// ParseISO parses a "2006-01-02" date string.
func ParseISO(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d Date) MonthKey {
	return MonthKey{Year: d.Year, Month: d.Month}
}

// Next returns the following calendar month.
func (m MonthKey) Next() MonthKey {
	if m.Month == time.December {
		return MonthKey{Year: m.Year + 1, Month: time.January}
	}
	return MonthKey{Year: m.Year, Month: m.Month + 1}
}

// Prev returns the preceding calendar month.
func (m MonthKey) Prev() MonthKey {
	if m.Month == time.January {
		return MonthKey{Year: m.Year - 1, Month: time.December}
	}
	return MonthKey{Year: m.Year, Month: m.Month - 1}
}

// Before reports whether m is an earlier month than o.
func (m MonthKey) Before(o MonthKey) bool {
	return m.Year < o.Year || (m.Year == o.Year && m.Month < o.Month)
}

// String formats the month like "January 2026".
func (m MonthKey) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// CalendarDuration is a span of time decomposed into whole calendar units.
type CalendarDuration struct {
	Years  int
	Months int
	Days   int
}

// DurationBetween decomposes the span from start to end into calendar
// years, months and days, using the same month-end clamping as AddMonths.
// start must not be after end.
func DurationBetween(start, end Date) CalendarDuration {
	months := 0
	for !start.AddMonths(months + 1).After(end) {
		months++
	}
	days := start.AddMonths(months).DaysUntil(end)
	return CalendarDuration{
		Years:  months / 12,
		Months: months % 12,
		Days:   days,
	}
}

// String renders the duration like "1 year, 2 months, 15 days", omitting
// zero units. A zero duration renders as "0 days".
func (c CalendarDuration) String() string {
	var parts []string
	if c.Years != 0 {
		parts = append(parts, plural(c.Years, "year"))
	}
	if c.Months != 0 {
		parts = append(parts, plural(c.Months, "month"))
	}
	if c.Days != 0 {
		parts = append(parts, plural(c.Days, "day"))
	}
	if len(parts) == 0 {
		return "0 days"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
