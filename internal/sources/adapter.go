// Package sources defines the adapter contract for race-card data
// providers and the collection fan-out that gathers their documents. Each
// adapter shapes one provider's feed into raw race documents; the fusion
// core never sees provider-specific structure.
package sources

import (
	"context"
	"time"

	"horse.fit/paddock/internal/racecard"
)

// Confidence levels assigned to observed fields by feed quality.
const (
	ConfidenceStructuredFeed = 0.9
	ConfidenceGenericFeed    = 0.6
)

// Config carries the per-run collection settings shared by all adapters.
type Config struct {
	// InputDir is the directory adapters scan for dropped feed files.
	InputDir string
	// Day is the calendar day the collected cards belong to.
	Day time.Time
}

// Adapter fetches and shapes one provider's data into raw race documents.
// Expected failure modes (no files, empty feed) return an empty slice and
// no error; only unexpected conditions surface as errors, and the
// collector isolates those per adapter.
type Adapter interface {
	SourceID() string
	Fetch(ctx context.Context, cfg Config) ([]racecard.RawRaceDocument, error)
}
