// Package cache persists the in-memory daily race cache as a day-scoped
// JSON snapshot. Writes are atomic (temp file then rename), so a crash
// mid-write always leaves the previous fully-written snapshot on disk.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/paddock/internal/globaltime"
	"horse.fit/paddock/internal/racecard"
)

// Schema identifies the snapshot file format.
const Schema = "paddock_cache_v1"

// ErrNoBackup is returned by Load when no snapshot exists for the day.
var ErrNoBackup = errors.New("no cache backup for day")

// Snapshot is the on-disk envelope. It round-trips exactly: writing and
// re-reading yields an identical race set.
type Snapshot struct {
	Schema      string                       `json:"schema"`
	GeneratedAt string                       `json:"generated_at"`
	Count       int                          `json:"count"`
	Races       map[string]racecard.RaceData `json:"races"`
}

// Store writes and restores day-scoped cache snapshots under one
// directory.
type Store struct {
	dir    string
	logger zerolog.Logger
}

func NewStore(dir string, logger zerolog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// PathFor returns the snapshot path for a calendar day.
func (s *Store) PathFor(day time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("paddock_cache_%s.json", day.Format("2006-01-02")))
}

// HasBackup reports whether a snapshot exists for the given day.
func (s *Store) HasBackup(day time.Time) bool {
	if s == nil {
		return false
	}
	_, err := os.Stat(s.PathFor(day))
	return err == nil
}

// Save atomically persists the full cache for the given day. On success
// the snapshot on disk is complete; on failure the previous snapshot (if
// any) is untouched.
func (s *Store) Save(day time.Time, races map[string]racecard.RaceData) error {
	if s == nil {
		return fmt.Errorf("cache store is nil")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir %s: %w", s.dir, err)
	}

	snapshot := Snapshot{
		Schema:      Schema,
		GeneratedAt: globaltime.UTC().Format(time.RFC3339),
		Count:       len(races),
		Races:       races,
	}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache snapshot: %w", err)
	}

	path := s.PathFor(day)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write cache temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace cache snapshot: %w", err)
	}

	s.logger.Debug().Str("path", path).Int("races", len(races)).Msg("cache snapshot saved")
	return nil
}

// Load restores the snapshot for a day. A leftover temp file from an
// interrupted write is ignored; only the last fully-written snapshot
// counts.
func (s *Store) Load(day time.Time) (map[string]racecard.RaceData, error) {
	if s == nil {
		return nil, fmt.Errorf("cache store is nil")
	}

	path := s.PathFor(day)
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoBackup
		}
		return nil, fmt.Errorf("read cache snapshot %s: %w", path, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("decode cache snapshot %s: %w", path, err)
	}
	if snapshot.Schema != Schema {
		return nil, fmt.Errorf("unexpected cache schema %q in %s", snapshot.Schema, path)
	}

	if snapshot.Races == nil {
		snapshot.Races = make(map[string]racecard.RaceData)
	}
	return snapshot.Races, nil
}
