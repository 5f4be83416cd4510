// Package models defines the guild dataset types and the derived
// statistics types shared across the application.
package models

import (
	"encoding/json"
	"time"
)

// Guild describes one tracked guild as declared in the data feed.
type Guild struct {
	Name            string `json:"name"`
	Color           string `json:"color"`
	BackgroundColor string `json:"backgroundColor"`
	SymbolURL       string `json:"symbolUrl"`
	Visible         bool   `json:"visible"`
}

// UnmarshalJSON defaults Visible to true when the field is absent.
func (g *Guild) UnmarshalJSON(data []byte) error {
	type alias Guild
	aux := alias{Visible: true}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*g = Guild(aux)
	return nil
}

// GuildReading is one guild's readings for a single day entry. Either
// number may be missing.
type GuildReading struct {
	Name         string `json:"name"`
	Contribution Number `json:"contribution"`
	MemberCount  Number `json:"memberCount"`
}

// DayEntry is one recorded day in the feed. Not every guild appears on
// every day, and recorded guilds may still have missing readings.
type DayEntry struct {
	Year         int            `json:"year"`
	Month        time.Month     `json:"month"`
	Day          int            `json:"day"`
	GuildEntries []GuildReading `json:"guildEntries"`
}

// Date returns the entry's calendar date.
func (e DayEntry) Date() Date {
	return Date{Year: e.Year, Month: e.Month, Day: e.Day}
}

// GuildData is the raw on-disk dataset.
type GuildData struct {
	Guilds     []Guild    `json:"guilds"`
	DayEntries []DayEntry `json:"dayEntries"`
}

// Entry is a normalized per-(date, guild) observation.
type Entry struct {
	Contribution Number
	MemberCount  Number
}
