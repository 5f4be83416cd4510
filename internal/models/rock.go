package models

import "time"

// RockEntry is one guild's placing in a monthly Honorable Rock snapshot.
type RockEntry struct {
	Rank         int     `json:"rank"`
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
}

// RockMonth is one month's top-50 leaderboard snapshot.
type RockMonth struct {
	Year    int         `json:"year"`
	Month   time.Month  `json:"month"`
	Entries []RockEntry `json:"entries"`
}

// Key returns the snapshot's month.
func (m RockMonth) Key() MonthKey {
	return MonthKey{Year: m.Year, Month: m.Month}
}

// RockData is the raw on-disk Honorable Rock dataset.
type RockData struct {
	Months []RockMonth `json:"months"`
}
