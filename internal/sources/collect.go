package sources

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"horse.fit/paddock/internal/racecard"
)

// CollectResult aggregates the documents gathered from every adapter that
// succeeded, plus per-adapter failures. A failing adapter never aborts its
// siblings; its contribution is simply absent from the merge.
type CollectResult struct {
	Documents []racecard.RawRaceDocument
	Failures  map[string]error
}

// Collect runs the selected adapters concurrently, one task per source.
// Panics inside an adapter are recovered and reported as failures so one
// misbehaving provider cannot take the run down.
func Collect(ctx context.Context, adapters []Adapter, cfg Config, logger zerolog.Logger) CollectResult {
	result := CollectResult{Failures: make(map[string]error)}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)

	for _, adapter := range adapters {
		group.Go(func() error {
			docs, err := fetchOne(groupCtx, adapter, cfg)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn().Err(err).Str("source", adapter.SourceID()).Msg("source adapter failed")
				result.Failures[adapter.SourceID()] = err
				return nil
			}
			logger.Debug().Str("source", adapter.SourceID()).Int("documents", len(docs)).Msg("source adapter fetched")
			result.Documents = append(result.Documents, docs...)
			return nil
		})
	}

	_ = group.Wait()
	return result
}

func fetchOne(ctx context.Context, adapter Adapter, cfg Config) (docs []racecard.RawRaceDocument, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			docs = nil
			err = fmt.Errorf("adapter panic: %v", recovered)
		}
	}()
	return adapter.Fetch(ctx, cfg)
}
