package pipeline

import (
	"testing"
	"time"

	"horse.fit/paddock/internal/racecard"
)

func rankFixture() []racecard.RaceData {
	early := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC)
	return []racecard.RaceData{
		{ID: "race-a", Course: "ascot", RaceType: "Handicap", FieldSize: 5, ValueScore: 90, UTCDateTime: &late},
		{ID: "race-b", Course: "epsom", RaceType: "Claiming", FieldSize: 12, ValueScore: 40, UTCDateTime: &early},
		{ID: "race-c", Course: "doncaster", RaceType: "Stakes", FieldSize: 8, ValueScore: 70},
	}
}

func TestRankSortsByScore(t *testing.T) {
	t.Parallel()

	ranked := Rank(rankFixture(), RankOptions{SortBy: SortByScore})
	if len(ranked) != 3 {
		t.Fatalf("expected 3 races, got %d", len(ranked))
	}
	if ranked[0].ID != "race-a" || ranked[1].ID != "race-c" || ranked[2].ID != "race-b" {
		t.Fatalf("unexpected score order: %s %s %s", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
}

func TestRankSortsByTimeWithUnknownLast(t *testing.T) {
	t.Parallel()

	ranked := Rank(rankFixture(), RankOptions{SortBy: SortByTime})
	if ranked[0].ID != "race-b" || ranked[1].ID != "race-a" || ranked[2].ID != "race-c" {
		t.Fatalf("unexpected time order: %s %s %s", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
}

func TestRankFilters(t *testing.T) {
	t.Parallel()

	minScore := 50.0
	ranked := Rank(rankFixture(), RankOptions{MinScore: &minScore, SortBy: SortByScore})
	if len(ranked) != 2 {
		t.Fatalf("expected 2 races above min score, got %d", len(ranked))
	}

	maxField := 8
	ranked = Rank(rankFixture(), RankOptions{MaxFieldSize: &maxField, SortBy: SortByScore})
	if len(ranked) != 2 {
		t.Fatalf("expected 2 races within field size cap, got %d", len(ranked))
	}

	ranked = Rank(rankFixture(), RankOptions{ExcludeRaceTypes: []string{"claiming", " STAKES "}})
	if len(ranked) != 1 || ranked[0].ID != "race-a" {
		t.Fatalf("expected only race-a to survive type exclusion, got %+v", ranked)
	}
}

func TestRankLimit(t *testing.T) {
	t.Parallel()

	ranked := Rank(rankFixture(), RankOptions{SortBy: SortByScore, Limit: 1})
	if len(ranked) != 1 || ranked[0].ID != "race-a" {
		t.Fatalf("expected top race only, got %+v", ranked)
	}
}

func TestRankNoOddsModeForcesTimeSort(t *testing.T) {
	t.Parallel()

	minScore := 50.0
	ranked := Rank(rankFixture(), RankOptions{MinScore: &minScore, SortBy: SortByScore, NoOddsMode: true})
	// The score filter is skipped and post time ordering applies.
	if len(ranked) != 3 {
		t.Fatalf("expected score filter skipped in no-odds mode, got %d races", len(ranked))
	}
	if ranked[0].ID != "race-b" {
		t.Fatalf("expected earliest race first, got %s", ranked[0].ID)
	}
}
