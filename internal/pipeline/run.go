package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"horse.fit/paddock/internal/racecard"
	"horse.fit/paddock/internal/sources"
)

// Report summarizes one collect-and-merge run.
type Report struct {
	Collected int
	Dropped   int
	Failures  map[string]error
	Batch     BatchResult
	Races     []racecard.RaceData
}

// RunOnce drives the full sequence: fetch from every selected adapter,
// coalesce same-race documents, merge into the session cache, then rank.
// Adapter failures are reported, not fatal; the output is best-effort
// from whatever sources succeeded.
func RunOnce(ctx context.Context, adapters []sources.Adapter, cfg sources.Config, session *Session, logger zerolog.Logger, opts RankOptions) Report {
	collected := sources.Collect(ctx, adapters, cfg, logger)

	report := Report{
		Collected: len(collected.Documents),
		Failures:  collected.Failures,
	}

	report.Batch = session.ApplyDocuments(collected.Documents)
	report.Dropped = report.Batch.Dropped
	report.Races = Rank(session.Snapshot(), opts)

	logger.Info().
		Int("documents", report.Collected).
		Int("dropped", report.Dropped).
		Int("added", report.Batch.Added).
		Int("updated", report.Batch.Updated).
		Int("cache_size", report.Batch.CacheSize).
		Int("failed_sources", len(report.Failures)).
		Msg("pipeline run complete")

	return report
}
