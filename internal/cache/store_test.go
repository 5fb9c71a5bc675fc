package cache

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/paddock/internal/racecard"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), zerolog.Nop())
}

func sampleRaces() map[string]racecard.RaceData {
	price := 2.5
	return map[string]racecard.RaceData{
		"abc123def456": {
			ID:       "abc123def456",
			Course:   "ascot",
			RaceTime: "14:30",
			Runners: []racecard.Runner{
				{Name: "Horse A", OddsStr: "5/2", Odds: &price},
				{Name: "Horse B", OddsStr: "SP"},
			},
			FieldSize:   2,
			DataSources: []string{"site-a", "site-b"},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	races := sampleRaces()

	if err := store.Save(day, races); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !store.HasBackup(day) {
		t.Fatalf("expected backup to exist after save")
	}

	loaded, err := store.Load(day)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, races) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, races)
	}

	// Unknown odds must come back as nil, not zero.
	if loaded["abc123def456"].Runners[1].Odds != nil {
		t.Fatalf("placeholder odds deserialized to a value")
	}
}

func TestLoadMissingBackup(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	if store.HasBackup(day) {
		t.Fatalf("unexpected backup in empty dir")
	}
	if _, err := store.Load(day); !errors.Is(err, ErrNoBackup) {
		t.Fatalf("expected ErrNoBackup, got %v", err)
	}
}

func TestSaveIsDayScoped(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	if err := store.Save(day, sampleRaces()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if store.HasBackup(next) {
		t.Fatalf("backup for one day must not satisfy another")
	}
	if store.PathFor(day) == store.PathFor(next) {
		t.Fatalf("snapshot paths must differ per day")
	}
}

func TestInterruptedWriteLeavesPreviousSnapshot(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	races := sampleRaces()

	if err := store.Save(day, races); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Simulate a crash mid-write: a truncated temp file next to the real
	// snapshot must not affect restore.
	tmp := store.PathFor(day) + ".tmp"
	if err := os.WriteFile(tmp, []byte(`{"schema":"paddock_cache_v1","races":{`), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	loaded, err := store.Load(day)
	if err != nil {
		t.Fatalf("load after interrupted write failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected previous snapshot intact, got %d races", len(loaded))
	}
}

func TestLoadRejectsWrongSchema(t *testing.T) {
	t.Parallel()

	store := testStore(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	if err := os.MkdirAll(filepath.Dir(store.PathFor(day)), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(store.PathFor(day), []byte(`{"schema":"other_v9","races":{}}`), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	if _, err := store.Load(day); err == nil {
		t.Fatalf("expected schema mismatch error")
	}
}
