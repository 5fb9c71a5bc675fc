package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/paddock/internal/racecard"
)

type panicAdapter struct{}

func (panicAdapter) SourceID() string { return "panicky" }

func (panicAdapter) Fetch(ctx context.Context, cfg Config) ([]racecard.RawRaceDocument, error) {
	panic("feed format changed")
}

func TestCollectIsolatesFailures(t *testing.T) {
	t.Parallel()

	good := &fakeAdapter{
		id: "good",
		docs: []racecard.RawRaceDocument{
			{SourceID: "good", TrackKey: "ascot", RaceKey: "ascot::r01"},
		},
	}
	bad := &fakeAdapter{id: "bad", err: errors.New("connection refused")}

	result := Collect(context.Background(), []Adapter{good, bad, panicAdapter{}}, Config{}, zerolog.Nop())

	if len(result.Documents) != 1 {
		t.Fatalf("expected 1 document from the healthy adapter, got %d", len(result.Documents))
	}
	if len(result.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d: %v", len(result.Failures), result.Failures)
	}
	if result.Failures["bad"] == nil {
		t.Fatalf("expected failure recorded for adapter bad")
	}
	if err := result.Failures["panicky"]; err == nil {
		t.Fatalf("expected panic converted to failure")
	}
}

func TestCollectAllHealthy(t *testing.T) {
	t.Parallel()

	a := &fakeAdapter{id: "a", docs: []racecard.RawRaceDocument{{SourceID: "a", TrackKey: "t", RaceKey: "t::r01"}}}
	b := &fakeAdapter{id: "b", docs: []racecard.RawRaceDocument{{SourceID: "b", TrackKey: "t", RaceKey: "t::r01"}}}

	result := Collect(context.Background(), []Adapter{a, b}, Config{}, zerolog.Nop())
	if len(result.Documents) != 2 || len(result.Failures) != 0 {
		t.Fatalf("unexpected result: %d documents, %d failures", len(result.Documents), len(result.Failures))
	}
}
