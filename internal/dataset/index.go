// Package dataset normalizes the raw guild feed into an immutable index
// and provides date-oriented lookups over it.
package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/roendal/guildwatch/internal/models"
)

// ErrEmptyDataset is returned by span accessors when the index has no
// dates or no guilds.
var ErrEmptyDataset = errors.New("dataset: empty dataset")

// IntegrityError reports malformed raw data. No partial index is built
// when one is returned.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return "dataset: " + e.Reason
}

type entryKey struct {
	date  models.Date
	guild string
}

// Index is an immutable view over the dataset. Lookups are keyed by the
// (date, guild) pair; ordering of dates and guilds is fixed at build time.
type Index struct {
	dates   []models.Date  // descending, most recent first
	guilds  []models.Guild // latest valid contribution descending
	entries map[entryKey]models.Entry
}

// Build validates raw guild data and constructs the index. Guilds are
// ordered by their latest valid contribution, highest first, with ties
// keeping the declaration order from the feed.
func Build(data *models.GuildData) (*Index, error) {
	known := make(map[string]bool, len(data.Guilds))
	for _, g := range data.Guilds {
		if g.Name == "" {
			return nil, &IntegrityError{Reason: "guild with empty name"}
		}
		if known[g.Name] {
			return nil, &IntegrityError{Reason: fmt.Sprintf("duplicate guild %q", g.Name)}
		}
		known[g.Name] = true
	}

	entries := make(map[entryKey]models.Entry)
	seenDates := make(map[models.Date]bool)
	var dates []models.Date
	for _, day := range data.DayEntries {
		date := day.Date()
		if !seenDates[date] {
			seenDates[date] = true
			dates = append(dates, date)
		}
		for _, r := range day.GuildEntries {
			if !known[r.Name] {
				return nil, &IntegrityError{
					Reason: fmt.Sprintf("entry for %s references unknown guild %q", date, r.Name),
				}
			}
			k := entryKey{date: date, guild: r.Name}
			if _, dup := entries[k]; dup {
				return nil, &IntegrityError{
					Reason: fmt.Sprintf("duplicate entry for guild %q on %s", r.Name, date),
				}
			}
			entries[k] = models.Entry{
				Contribution: r.Contribution,
				MemberCount:  r.MemberCount,
			}
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	ix := &Index{
		dates:   dates,
		entries: entries,
	}
	ix.guilds = orderGuilds(ix, data.Guilds)
	return ix, nil
}

// orderGuilds sorts by each guild's most recent valid contribution,
// highest first. Guilds with no valid contribution sort last, and equal
// values keep the feed's declaration order.
func orderGuilds(ix *Index, guilds []models.Guild) []models.Guild {
	type ranked struct {
		guild models.Guild
		value float64
		has   bool
	}
	rankedGuilds := make([]ranked, len(guilds))
	for i, g := range guilds {
		r := ranked{guild: g}
		for _, d := range ix.dates {
			if e, ok := ix.Entry(d, g.Name); ok && e.Contribution.Valid {
				r.value = e.Contribution.Value
				r.has = true
				break
			}
		}
		rankedGuilds[i] = r
	}

	sort.SliceStable(rankedGuilds, func(i, j int) bool {
		a, b := rankedGuilds[i], rankedGuilds[j]
		if a.has != b.has {
			return a.has
		}
		return a.value > b.value
	})

	out := make([]models.Guild, len(rankedGuilds))
	for i, r := range rankedGuilds {
		out[i] = r.guild
	}
	return out
}

// Dates returns every recorded date, most recent first.
func (ix *Index) Dates() []models.Date {
	out := make([]models.Date, len(ix.dates))
	copy(out, ix.dates)
	return out
}

// Guilds returns the guilds in standings order.
func (ix *Index) Guilds() []models.Guild {
	out := make([]models.Guild, len(ix.guilds))
	copy(out, ix.guilds)
	return out
}

// Guild looks up a guild by name.
func (ix *Index) Guild(name string) (models.Guild, bool) {
	for _, g := range ix.guilds {
		if g.Name == name {
			return g, true
		}
	}
	return models.Guild{}, false
}

// Entry returns the observation for the given date and guild. A pair
// absent from the feed is a miss; a recorded pair with missing readings
// returns an entry whose numbers are invalid.
func (ix *Index) Entry(date models.Date, guild string) (models.Entry, bool) {
	e, ok := ix.entries[entryKey{date: date, guild: guild}]
	return e, ok
}

// NumDates returns how many distinct dates the feed recorded.
func (ix *Index) NumDates() int { return len(ix.dates) }

// NumGuilds returns how many guilds the feed declared.
func (ix *Index) NumGuilds() int { return len(ix.guilds) }
