// Package coalesce merges raw race documents that describe the same
// real-world race, possibly observed by different sources at different
// times, into one document per (track key, race key).
//
// The merge is confidence-weighted at field granularity: where two sources
// both claim a value, the strictly higher confidence wins and ties keep
// the value already held by the merge base. For a fixed confidence
// assignment the result is independent of input order.
package coalesce

import (
	"horse.fit/paddock/internal/racecard"
)

// Key identifies one real-world race across sources.
type Key struct {
	TrackKey string
	RaceKey  string
}

// Result holds the coalesced documents plus the count of documents that
// had to be dropped because they arrived without merge keys.
type Result struct {
	Races   map[Key]racecard.RawRaceDocument
	Dropped int
}

// MergeField resolves two observations of one attribute. If only one side
// has a value it is taken; otherwise the strictly higher confidence wins
// and a tie keeps the base value.
func MergeField[T any](base, incoming *racecard.Field[T]) *racecard.Field[T] {
	if base == nil {
		return incoming.Clone()
	}
	if incoming == nil {
		return base.Clone()
	}
	if incoming.Confidence > base.Confidence {
		return incoming.Clone()
	}
	return base.Clone()
}

// MergeRunner merges two observations of the same runner field by field.
// Both sides must share a RunnerID.
func MergeRunner(base, incoming racecard.RunnerDoc) racecard.RunnerDoc {
	merged := racecard.RunnerDoc{
		RunnerID: base.RunnerID,
		Name:     MergeField(base.Name, incoming.Name),
		Number:   MergeField(base.Number, incoming.Number),
		Odds:     MergeField(base.Odds, incoming.Odds),
		Jockey:   MergeField(base.Jockey, incoming.Jockey),
		Trainer:  MergeField(base.Trainer, incoming.Trainer),
		Extras:   mergeExtras(base.Extras, incoming.Extras),
	}
	if merged.Name == nil {
		merged.Name = base.Name.Clone()
	}
	return merged
}

// Documents groups the input by (track key, race key) and merges each
// group into a single document. Runners are merged by runner ID; the base
// document's runner order is preserved and unseen runners append in
// arrival order. Documents without merge keys are dropped and counted.
// The inputs are never mutated.
func Documents(docs []racecard.RawRaceDocument) Result {
	result := Result{Races: make(map[Key]racecard.RawRaceDocument)}

	for _, doc := range docs {
		if !doc.Mergeable() {
			result.Dropped++
			continue
		}
		key := Key{TrackKey: doc.TrackKey, RaceKey: doc.RaceKey}

		base, ok := result.Races[key]
		if !ok {
			result.Races[key] = doc.Clone()
			continue
		}

		index := make(map[string]int, len(base.Runners))
		for i, r := range base.Runners {
			index[r.RunnerID] = i
		}
		for _, incoming := range doc.Runners {
			if i, seen := index[incoming.RunnerID]; seen {
				base.Runners[i] = MergeRunner(base.Runners[i], incoming)
			} else {
				index[incoming.RunnerID] = len(base.Runners)
				base.Runners = append(base.Runners, incoming.Clone())
			}
		}
		base.Extras = mergeExtras(base.Extras, doc.Extras)
		result.Races[key] = base
	}

	return result
}

func mergeExtras(base, incoming map[string]*racecard.Field[string]) map[string]*racecard.Field[string] {
	if base == nil && incoming == nil {
		return nil
	}
	merged := make(map[string]*racecard.Field[string], len(base)+len(incoming))
	for k, v := range base {
		merged[k] = v.Clone()
	}
	for k, v := range incoming {
		merged[k] = MergeField(merged[k], v)
	}
	return merged
}
