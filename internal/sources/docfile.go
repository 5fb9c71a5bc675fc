package sources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"horse.fit/paddock/internal/racecard"
	payloadschema "horse.fit/paddock/schema"
)

// DocFileAdapter ingests schema-validated raw race-document batches
// (*.batch.json) dropped into the input directory. This is the canonical
// hand-off format for external scrapers and manual collection.
type DocFileAdapter struct{}

func NewDocFileAdapter() *DocFileAdapter {
	return &DocFileAdapter{}
}

func (a *DocFileAdapter) SourceID() string { return "docfile" }

func (a *DocFileAdapter) Fetch(ctx context.Context, cfg Config) ([]racecard.RawRaceDocument, error) {
	paths, err := filepath.Glob(filepath.Join(cfg.InputDir, "*.batch.json"))
	if err != nil {
		return nil, fmt.Errorf("scan input dir: %w", err)
	}

	var docs []racecard.RawRaceDocument
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		payload, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read batch file %s: %w", path, err)
		}
		validated, err := payloadschema.ValidateBatch(payload)
		if err != nil {
			return nil, fmt.Errorf("validate batch file %s: %w", path, err)
		}
		docs = append(docs, validated...)
	}
	return docs, nil
}
