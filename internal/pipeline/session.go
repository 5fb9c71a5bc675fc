package pipeline

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/paddock/internal/cache"
	"horse.fit/paddock/internal/coalesce"
	"horse.fit/paddock/internal/fusion"
	"horse.fit/paddock/internal/globaltime"
	"horse.fit/paddock/internal/racecard"
	"horse.fit/paddock/internal/score"
)

// SessionOptions tunes the long-lived merge session.
type SessionOptions struct {
	// AutoRestore loads a same-day backup on the first batch without
	// prompting.
	AutoRestore bool
	// DisableBackup turns off snapshot writes after each batch.
	DisableBackup bool
	// NoOddsMode skips value scoring, for days when no prices are
	// available anywhere.
	NoOddsMode bool
}

// BatchResult summarizes one merge batch.
type BatchResult struct {
	Added     int
	Updated   int
	Dropped   int
	CacheSize int
	Persisted bool
}

// Session owns the daily race cache. It is safe for concurrent readers
// (the HTTP API) alongside the single producer applying batches; the
// merge itself runs single-threaded under the write lock.
type Session struct {
	mu     sync.RWMutex
	logger zerolog.Logger
	store  *cache.Store
	scorer *score.Scorer
	zones  Zones
	opts   SessionOptions

	races    map[string]racecard.RaceData
	day      time.Time
	unsynced bool
}

func NewSession(store *cache.Store, scorer *score.Scorer, zones Zones, logger zerolog.Logger, opts SessionOptions) *Session {
	return &Session{
		logger: logger,
		store:  store,
		scorer: scorer,
		zones:  zones,
		opts:   opts,
		races:  make(map[string]racecard.RaceData),
	}
}

// Day returns the calendar day the cache is currently scoped to.
func (s *Session) Day() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.day
}

// Size returns the number of cached races.
func (s *Session) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.races)
}

// Race looks up one cached race by ID.
func (s *Session) Race(id string) (racecard.RaceData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	race, ok := s.races[id]
	if !ok {
		return racecard.RaceData{}, false
	}
	return race.Clone(), true
}

// Snapshot returns a copy of every cached race.
func (s *Session) Snapshot() []racecard.RaceData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	races := make([]racecard.RaceData, 0, len(s.races))
	for _, race := range s.races {
		races = append(races, race.Clone())
	}
	return races
}

// Rollover resets the cache when the calendar day has changed, restoring
// a same-day backup when one exists and restore is enabled. Stale
// cross-day state never leaks forward: a new day always starts empty.
func (s *Session) Rollover() (restored int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rolloverLocked()
}

func (s *Session) rolloverLocked() (int, error) {
	today := globaltime.Today()
	if s.day.Equal(today) {
		return 0, nil
	}

	s.logger.Info().Str("day", today.Format("2006-01-02")).Msg("new day detected, resetting cache")
	s.races = make(map[string]racecard.RaceData)
	s.day = today
	s.unsynced = false

	if !s.opts.AutoRestore || !s.store.HasBackup(today) {
		return 0, nil
	}
	restoredRaces, err := s.store.Load(today)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not restore cache backup")
		return 0, err
	}
	s.races = restoredRaces
	s.logger.Info().Int("races", len(restoredRaces)).Msg("restored cache from backup")
	return len(restoredRaces), nil
}

// ApplyDocuments coalesces raw documents, converts them to race
// aggregates and merges them into the cache in one batch.
func (s *Session) ApplyDocuments(docs []racecard.RawRaceDocument) BatchResult {
	coalesced := coalesce.Documents(docs)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.rolloverLocked(); err != nil {
		s.logger.Warn().Err(err).Msg("rollover restore failed, continuing with empty cache")
	}

	races := make([]racecard.RaceData, 0, len(coalesced.Races))
	for _, doc := range coalesced.Races {
		races = append(races, RaceFromDocument(doc, s.day, s.zones))
	}

	result := s.applyLocked(races)
	result.Dropped = coalesced.Dropped
	return result
}

// ApplyRaces merges already-shaped race aggregates into the cache.
func (s *Session) ApplyRaces(races []racecard.RaceData) BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.rolloverLocked(); err != nil {
		s.logger.Warn().Err(err).Msg("rollover restore failed, continuing with empty cache")
	}
	return s.applyLocked(races)
}

func (s *Session) applyLocked(races []racecard.RaceData) BatchResult {
	result := BatchResult{}

	for _, race := range fusion.Dedupe(races) {
		if existing, ok := s.races[race.ID]; ok {
			s.races[race.ID] = fusion.MergeRace(existing, race)
			result.Updated++
		} else {
			s.races[race.ID] = fusion.Enrich(race)
			result.Added++
		}
	}

	if !s.opts.NoOddsMode {
		for id, race := range s.races {
			race.ValueScore = s.scorer.Score(race).Total
			s.races[id] = race
		}
	}

	result.CacheSize = len(s.races)
	result.Persisted = s.persistLocked()
	return result
}

// persistLocked writes the backup snapshot unless backups are disabled.
// A write failure keeps the in-memory cache operating but flags that a
// crash would now lose unsaved state.
func (s *Session) persistLocked() bool {
	if s.opts.DisableBackup {
		return false
	}
	if err := s.store.Save(s.day, s.races); err != nil {
		s.unsynced = true
		s.logger.Error().Err(err).Msg("cache backup failed; a crash would lose unsaved state")
		return false
	}
	s.unsynced = false
	return true
}

// Unsynced reports whether the in-memory cache has changes that could not
// be written to disk.
func (s *Session) Unsynced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unsynced
}

// Flush forces a snapshot write, used on shutdown.
func (s *Session) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.DisableBackup || len(s.races) == 0 {
		return nil
	}
	return s.store.Save(s.day, s.races)
}
