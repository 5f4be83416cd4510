package rock

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/roendal/guildwatch/internal/models"
)

const rockFeed = `{
	"months": [
		{"year": 2025, "month": 12, "entries": [
			{"rank": 1, "name": "Azure", "contribution": 900000},
			{"rank": 2, "name": "Crimson", "contribution": 850000},
			{"rank": 3, "name": "Viridian", "contribution": 800000}
		]},
		{"year": 2026, "month": 1, "entries": [
			{"rank": 1, "name": "Crimson", "contribution": 990000},
			{"rank": 2, "name": "Azure", "contribution": 980000}
		]}
	]
}`

func newService(t *testing.T, content string) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "honorableRockData.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestIndexLookups(t *testing.T) {
	ix := newService(t, rockFeed).Index()

	months := ix.Months()
	if len(months) != 2 {
		t.Fatalf("got %d months, want 2", len(months))
	}
	if months[0].Month != time.December || months[1].Month != time.January {
		t.Errorf("months not ascending: %v", months)
	}

	jan := models.MonthKey{Year: 2026, Month: time.January}
	if e, ok := ix.Entry(jan, 1); !ok || e.Name != "Crimson" {
		t.Errorf("Entry(jan, 1) = %+v, %v", e, ok)
	}
	if e, ok := ix.EntryByName(jan, "Azure"); !ok || e.Rank != 2 {
		t.Errorf("EntryByName(jan, Azure) = %+v, %v", e, ok)
	}
	if _, ok := ix.Entry(jan, 3); ok {
		t.Error("rank 3 absent in January")
	}

	dec := models.MonthKey{Year: 2025, Month: time.December}
	entries := ix.Entries(dec)
	if len(entries) != 3 || entries[0].Name != "Azure" || entries[2].Name != "Viridian" {
		t.Errorf("Entries(dec) = %+v", entries)
	}
}

func TestRankDelta(t *testing.T) {
	ix := newService(t, rockFeed).Index()
	jan := models.MonthKey{Year: 2026, Month: time.January}

	// Crimson climbed from rank 2 to rank 1.
	if d, ok := ix.RankDelta(jan, "Crimson"); !ok || d != 1 {
		t.Errorf("Crimson delta = %d, %v, want 1", d, ok)
	}
	// Azure fell from 1 to 2.
	if d, ok := ix.RankDelta(jan, "Azure"); !ok || d != -1 {
		t.Errorf("Azure delta = %d, %v, want -1", d, ok)
	}
	// Viridian dropped out of the snapshot.
	if _, ok := ix.RankDelta(jan, "Viridian"); ok {
		t.Error("guild missing from the month has no delta")
	}
	// No previous month to compare against.
	dec := models.MonthKey{Year: 2025, Month: time.December}
	if _, ok := ix.RankDelta(dec, "Azure"); ok {
		t.Error("first month has no delta")
	}
}

func TestMissingFeedIsEmpty(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := len(s.Index().Months()); got != 0 {
		t.Errorf("missing feed should yield an empty index, got %d months", got)
	}
}

func TestDisabledService(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := len(s.Index().Months()); got != 0 {
		t.Errorf("disabled service should be empty, got %d months", got)
	}
}

func TestRejectsDuplicateRank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rock.json")
	bad := `{"months": [{"year": 2026, "month": 1, "entries": [
		{"rank": 1, "name": "Azure"}, {"rank": 1, "name": "Crimson"}
	]}]}`
	if err := os.WriteFile(path, []byte(bad), 0o600); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	if _, err := New(path); err == nil {
		t.Fatal("want error for duplicate rank")
	}
}

func TestRejectsDuplicateMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rock.json")
	bad := `{"months": [
		{"year": 2026, "month": 1, "entries": [{"rank": 1, "name": "Azure"}]},
		{"year": 2026, "month": 1, "entries": [{"rank": 2, "name": "Crimson"}]}
	]}`
	if err := os.WriteFile(path, []byte(bad), 0o600); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	if _, err := New(path); err == nil {
		t.Fatal("want error for duplicate month")
	}
}
