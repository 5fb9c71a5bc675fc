package pipeline

import (
	"sort"
	"strings"

	"horse.fit/paddock/internal/racecard"
)

// Sort keys accepted by RankOptions.SortBy.
const (
	SortByScore     = "score"
	SortByTime      = "time"
	SortByFieldSize = "field_size"
	SortByCourse    = "course"
)

// RankOptions filters and orders the final race list.
type RankOptions struct {
	MinScore         *float64
	MinFieldSize     *int
	MaxFieldSize     *int
	ExcludeRaceTypes []string
	SortBy           string
	Limit            int
	NoOddsMode       bool
}

// Rank applies the filters, sorts and truncates. In no-odds mode the
// score filter is skipped and races sort by post time regardless of the
// requested key.
func Rank(races []racecard.RaceData, opts RankOptions) []racecard.RaceData {
	excluded := make(map[string]struct{}, len(opts.ExcludeRaceTypes))
	for _, raceType := range opts.ExcludeRaceTypes {
		raceType = strings.ToLower(strings.TrimSpace(raceType))
		if raceType != "" {
			excluded[raceType] = struct{}{}
		}
	}

	filtered := make([]racecard.RaceData, 0, len(races))
	for _, race := range races {
		if opts.MinScore != nil && !opts.NoOddsMode && race.ValueScore < *opts.MinScore {
			continue
		}
		if opts.MinFieldSize != nil && race.FieldSize < *opts.MinFieldSize {
			continue
		}
		if opts.MaxFieldSize != nil && race.FieldSize > *opts.MaxFieldSize {
			continue
		}
		if _, skip := excluded[strings.ToLower(race.RaceType)]; skip {
			continue
		}
		filtered = append(filtered, race)
	}

	sortKey := opts.SortBy
	if opts.NoOddsMode {
		sortKey = SortByTime
	}
	sortRaces(filtered, sortKey)

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}
	return filtered
}

func sortRaces(races []racecard.RaceData, key string) {
	switch key {
	case SortByTime:
		sort.SliceStable(races, func(i, j int) bool {
			a, b := races[i].UTCDateTime, races[j].UTCDateTime
			switch {
			case a == nil && b == nil:
				return races[i].ID < races[j].ID
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case SortByFieldSize:
		sort.SliceStable(races, func(i, j int) bool {
			return races[i].FieldSize < races[j].FieldSize
		})
	case SortByCourse:
		sort.SliceStable(races, func(i, j int) bool {
			return races[i].Course < races[j].Course
		})
	default: // score, highest first
		sort.SliceStable(races, func(i, j int) bool {
			if races[i].ValueScore != races[j].ValueScore {
				return races[i].ValueScore > races[j].ValueScore
			}
			return races[i].ID < races[j].ID
		})
	}
}
