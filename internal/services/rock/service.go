// Package rock loads the monthly Honorable Rock leaderboard snapshots.
package rock

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/roendal/guildwatch/internal/models"
)

// Service loads the Rock JSON feed and serves an indexed view of it.
// A missing feed is not an error; the service just stays empty.
type Service struct {
	mu       sync.RWMutex
	filePath string
	index    *Index
}

// New creates the service and loads the feed if it exists.
func New(filePath string) (*Service, error) {
	s := &Service{filePath: filePath, index: emptyIndex()}
	if filePath == "" {
		return s, nil
	}
	if err := s.Reload(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Index returns the current leaderboard index.
func (s *Service) Index() *Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Path returns the feed's file path.
func (s *Service) Path() string {
	return s.filePath
}

// Reload re-reads the feed from disk.
func (s *Service) Reload() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var raw models.RockData
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse rock data: %w", err)
	}

	ix, err := buildIndex(&raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.index = ix
	s.mu.Unlock()
	return nil
}

type monthRank struct {
	month models.MonthKey
	rank  int
}

type monthName struct {
	month models.MonthKey
	name  string
}

// Index is an immutable view over the monthly snapshots, keyed both by
// rank and by guild name.
type Index struct {
	months  []models.MonthKey // ascending
	byRank  map[monthRank]models.RockEntry
	byName  map[monthName]models.RockEntry
	byMonth map[models.MonthKey][]models.RockEntry // sorted by rank
}

func emptyIndex() *Index {
	return &Index{
		byRank:  map[monthRank]models.RockEntry{},
		byName:  map[monthName]models.RockEntry{},
		byMonth: map[models.MonthKey][]models.RockEntry{},
	}
}

func buildIndex(data *models.RockData) (*Index, error) {
	ix := emptyIndex()
	seen := map[models.MonthKey]bool{}
	for _, m := range data.Months {
		key := m.Key()
		if seen[key] {
			return nil, fmt.Errorf("duplicate month %s", key)
		}
		seen[key] = true
		for _, e := range m.Entries {
			rk := monthRank{month: key, rank: e.Rank}
			if _, dup := ix.byRank[rk]; dup {
				return nil, fmt.Errorf("duplicate rank %d in %s", e.Rank, key)
			}
			nk := monthName{month: key, name: e.Name}
			if _, dup := ix.byName[nk]; dup {
				return nil, fmt.Errorf("duplicate guild %q in %s", e.Name, key)
			}
			ix.byRank[rk] = e
			ix.byName[nk] = e
			ix.byMonth[key] = append(ix.byMonth[key], e)
		}
		entries := ix.byMonth[key]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Rank < entries[j].Rank })
		ix.months = append(ix.months, key)
	}
	sort.Slice(ix.months, func(i, j int) bool { return ix.months[i].Before(ix.months[j]) })
	return ix, nil
}

// Months lists the snapshot months, oldest first.
func (ix *Index) Months() []models.MonthKey {
	out := make([]models.MonthKey, len(ix.months))
	copy(out, ix.months)
	return out
}

// Entries returns a month's entries in rank order.
func (ix *Index) Entries(month models.MonthKey) []models.RockEntry {
	entries := ix.byMonth[month]
	out := make([]models.RockEntry, len(entries))
	copy(out, entries)
	return out
}

// Entry returns the snapshot entry at the given rank.
func (ix *Index) Entry(month models.MonthKey, rank int) (models.RockEntry, bool) {
	e, ok := ix.byRank[monthRank{month: month, rank: rank}]
	return e, ok
}

// EntryByName returns a guild's snapshot entry for the month.
func (ix *Index) EntryByName(month models.MonthKey, name string) (models.RockEntry, bool) {
	e, ok := ix.byName[monthName{month: month, name: name}]
	return e, ok
}

// RankDelta returns how many places the guild climbed since the
// previous month's snapshot. Positive means the guild moved up. The
// second result is false when either month lacks the guild.
func (ix *Index) RankDelta(month models.MonthKey, name string) (int, bool) {
	current, ok := ix.EntryByName(month, name)
	if !ok {
		return 0, false
	}
	previous, ok := ix.EntryByName(month.Prev(), name)
	if !ok {
		return 0, false
	}
	return previous.Rank - current.Rank, true
}
