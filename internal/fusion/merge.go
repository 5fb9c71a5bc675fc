// Package fusion implements the incremental "smart merge" that lets a
// long-running session absorb repeated, partial batches of race data
// without ever regressing quality. MergeRace is pure: it returns a new
// value and leaves both inputs untouched, so the cache layer owns the
// replace-in-map step.
package fusion

import (
	"sort"
	"strings"

	"horse.fit/paddock/internal/racecard"
)

// RunnerKey normalizes a runner name into the case-insensitive,
// whitespace-collapsed key runners merge under.
func RunnerKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// chooseBetterRunner decides which observation of the same runner to keep.
// A known price always beats a placeholder; between two known prices the
// incoming one wins, because it is the fresher observation.
func chooseBetterRunner(existing, incoming racecard.Runner) racecard.Runner {
	switch {
	case incoming.HasKnownOdds() && !existing.HasKnownOdds():
		return incoming
	case existing.HasKnownOdds() && !incoming.HasKnownOdds():
		return existing
	case existing.HasKnownOdds() && incoming.HasKnownOdds():
		return incoming
	default:
		return existing
	}
}

// MergeRunners merges two runner lists by normalized name and returns the
// result sorted ascending by odds, runners with unknown odds last and name
// order breaking ties.
func MergeRunners(existing, incoming []racecard.Runner) []racecard.Runner {
	merged := make(map[string]racecard.Runner, len(existing)+len(incoming))
	order := make([]string, 0, len(existing)+len(incoming))

	for _, r := range existing {
		key := RunnerKey(r.Name)
		if _, seen := merged[key]; !seen {
			order = append(order, key)
		}
		merged[key] = r
	}
	for _, r := range incoming {
		key := RunnerKey(r.Name)
		if current, seen := merged[key]; seen {
			merged[key] = chooseBetterRunner(current, r)
		} else {
			merged[key] = r
			order = append(order, key)
		}
	}

	result := make([]racecard.Runner, 0, len(merged))
	for _, key := range order {
		result = append(result, merged[key])
	}
	SortRunners(result)
	return result
}

// SortRunners orders runners ascending by odds with unknown prices last.
// The sort is deterministic: equal odds fall back to name order.
func SortRunners(runners []racecard.Runner) {
	sort.SliceStable(runners, func(i, j int) bool {
		a, b := runners[i], runners[j]
		switch {
		case a.HasKnownOdds() && !b.HasKnownOdds():
			return true
		case !a.HasKnownOdds() && b.HasKnownOdds():
			return false
		case a.HasKnownOdds() && b.HasKnownOdds():
			if *a.Odds != *b.Odds {
				return *a.Odds < *b.Odds
			}
		}
		return RunnerKey(a.Name) < RunnerKey(b.Name)
	})
}

// MergeRace folds an incoming observation of a race into the existing
// cached one and returns a new enriched value. Runner data merges by
// normalized name; scalar fields fill forward only, so a known value is
// never overwritten by a different known value from a noisy re-scrape.
// Source attribution accumulates as a sorted set union.
func MergeRace(existing, incoming racecard.RaceData) racecard.RaceData {
	merged := existing.Clone()

	merged.DataSources = unionSources(existing.DataSources, incoming.DataSources)
	if merged.RaceURL == "" {
		merged.RaceURL = incoming.RaceURL
	}
	if isUnknown(merged.RaceType) && !isUnknown(incoming.RaceType) {
		merged.RaceType = incoming.RaceType
	}
	merged.Runners = MergeRunners(existing.Runners, incoming.Runners)
	merged.FieldSize = len(merged.Runners)
	if merged.LocalTime == "" {
		merged.LocalTime = incoming.LocalTime
	}
	if merged.UTCDateTime == nil && incoming.UTCDateTime != nil {
		t := *incoming.UTCDateTime
		merged.UTCDateTime = &t
	}
	if merged.TimezoneName == "" {
		merged.TimezoneName = incoming.TimezoneName
	}
	if merged.Country == "" || strings.EqualFold(merged.Country, "unknown") {
		if incoming.Country != "" && !strings.EqualFold(incoming.Country, "unknown") {
			merged.Country = incoming.Country
		}
	}
	if merged.Discipline == "" {
		merged.Discipline = incoming.Discipline
	}

	return Enrich(merged)
}

// Enrich recomputes every derived attribute of a race: runner ordering,
// field size and the favorite pointers. Favorite and second favorite are
// the two lowest-odds runners with a known price; races where no runner
// has a price get no favorites.
func Enrich(race racecard.RaceData) racecard.RaceData {
	enriched := race.Clone()
	SortRunners(enriched.Runners)
	enriched.FieldSize = len(enriched.Runners)
	enriched.Favorite = nil
	enriched.SecondFavorite = nil

	for i := range enriched.Runners {
		if !enriched.Runners[i].HasKnownOdds() {
			break
		}
		runner := enriched.Runners[i]
		if enriched.Favorite == nil {
			enriched.Favorite = &runner
		} else if enriched.SecondFavorite == nil {
			enriched.SecondFavorite = &runner
			break
		}
	}
	return enriched
}

// Dedupe merges duplicate race entries by ID and enriches the survivors.
// Input order only affects which observation seeds each merge; the fill
// forward rules make the outcome stable for consistent inputs.
func Dedupe(races []racecard.RaceData) []racecard.RaceData {
	byID := make(map[string]racecard.RaceData, len(races))
	order := make([]string, 0, len(races))
	for _, race := range races {
		if existing, ok := byID[race.ID]; ok {
			byID[race.ID] = MergeRace(existing, race)
		} else {
			byID[race.ID] = Enrich(race)
			order = append(order, race.ID)
		}
	}

	result := make([]racecard.RaceData, 0, len(byID))
	for _, id := range order {
		result = append(result, byID[id])
	}
	return result
}

func unionSources(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	union := make([]string, 0, len(a)+len(b))
	for _, src := range append(append([]string(nil), a...), b...) {
		if src == "" {
			continue
		}
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		union = append(union, src)
	}
	sort.Strings(union)
	return union
}

func isUnknown(value string) bool {
	return value == "" || strings.EqualFold(value, "unknown") || strings.EqualFold(value, "unknown type")
}
