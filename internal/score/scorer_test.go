package score

import (
	"math"
	"testing"

	"horse.fit/paddock/internal/racecard"
)

func odds(v float64) *float64 { return &v }

func scoredRace() racecard.RaceData {
	fav := racecard.Runner{Name: "First", OddsStr: "6/4", Odds: odds(1.5)}
	second := racecard.Runner{Name: "Second", OddsStr: "7/2", Odds: odds(3.5)}
	return racecard.RaceData{
		ID:     "abc123def456",
		Course: "epsom",
		Runners: []racecard.Runner{
			fav,
			second,
			{Name: "Third", OddsStr: "8/1", Odds: odds(8.0)},
			{Name: "Fourth", OddsStr: "SP"},
		},
		FieldSize:      4,
		Favorite:       &fav,
		SecondFavorite: &second,
		RaceURL:        "https://example.com/epsom/1",
		DataSources:    []string{"site-a", "site-b"},
	}
}

func TestFieldSizeScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		size int
		want float64
	}{
		{3, 100}, {5, 100}, {6, 85}, {8, 85}, {9, 60}, {12, 60}, {2, 20}, {13, 20}, {0, 20},
	}
	for _, tc := range cases {
		if got := fieldSizeScore(tc.size); got != tc.want {
			t.Fatalf("fieldSizeScore(%d) = %v, want %v", tc.size, got, tc.want)
		}
	}
}

func TestFavoriteOddsScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		odds float64
		want float64
	}{
		{1.0, 100}, {1.5, 100}, {2.0, 90}, {2.5, 90}, {3.0, 75}, {4.0, 75},
		{0.5, 85}, {0.9, 85}, {0.25, 60}, {5.0, 40},
	}
	for _, tc := range cases {
		fav := &racecard.Runner{Name: "Fav", Odds: odds(tc.odds)}
		if got := favoriteOddsScore(fav); got != tc.want {
			t.Fatalf("favoriteOddsScore(%v) = %v, want %v", tc.odds, got, tc.want)
		}
	}

	if got := favoriteOddsScore(nil); got != 50 {
		t.Fatalf("expected 50 for missing favorite, got %v", got)
	}
	if got := favoriteOddsScore(&racecard.Runner{Name: "NoPrice", OddsStr: "SP"}); got != 50 {
		t.Fatalf("expected 50 for priceless favorite, got %v", got)
	}
}

func TestOddsSpreadScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		fav, second float64
		want        float64
	}{
		{1.5, 3.5, 100}, {1.5, 3.0, 90}, {1.5, 2.5, 80}, {1.5, 2.0, 60}, {1.5, 1.75, 40},
	}
	for _, tc := range cases {
		fav := &racecard.Runner{Odds: odds(tc.fav)}
		second := &racecard.Runner{Odds: odds(tc.second)}
		if got := oddsSpreadScore(fav, second); got != tc.want {
			t.Fatalf("oddsSpreadScore(%v, %v) = %v, want %v", tc.fav, tc.second, got, tc.want)
		}
	}

	if got := oddsSpreadScore(nil, nil); got != 50 {
		t.Fatalf("expected 50 without favorites, got %v", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights)
	race := scoredRace()

	first := scorer.Score(race)
	for i := 0; i < 5; i++ {
		if got := scorer.Score(race); got != first {
			t.Fatalf("score not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestScoreBreakdown(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights)
	breakdown := scorer.Score(scoredRace())

	if breakdown.FieldSize != 100 {
		t.Fatalf("expected field size bucket 100, got %v", breakdown.FieldSize)
	}
	if breakdown.FavoriteOdds != 100 {
		t.Fatalf("expected favorite odds bucket 100, got %v", breakdown.FavoriteOdds)
	}
	if breakdown.OddsSpread != 100 {
		t.Fatalf("expected spread bucket 100, got %v", breakdown.OddsSpread)
	}
	if breakdown.DataQuality != 100 {
		t.Fatalf("expected full data quality, got %v", breakdown.DataQuality)
	}

	// Live odds (1.2) and small competitive field (1.15) multipliers
	// apply, taking the weighted 100 base over the cap.
	wantMultiplier := 1.2 * 1.15
	if math.Abs(breakdown.Multiplier-wantMultiplier) > 1e-9 {
		t.Fatalf("expected multiplier %v, got %v", wantMultiplier, breakdown.Multiplier)
	}
	if breakdown.Total != 100 {
		t.Fatalf("expected capped total 100, got %v", breakdown.Total)
	}
}

func TestScoreEmptyRace(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights)
	breakdown := scorer.Score(racecard.RaceData{ID: "abc123def456"})
	if breakdown.Total != 0 || breakdown.Multiplier != 1.0 {
		t.Fatalf("expected zero score for empty race, got %+v", breakdown)
	}
}

func TestScoreCourseProfile(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights)

	plain := scoredRace()
	plain.Course = "epsom"
	profiled := scoredRace()
	profiled.Course = "ascot"

	a := scorer.Score(plain)
	b := scorer.Score(profiled)
	if math.Abs(b.Multiplier-a.Multiplier*1.05) > 1e-9 {
		t.Fatalf("expected ascot profile multiplier 1.05, got %v vs %v", b.Multiplier, a.Multiplier)
	}
}

func TestScoreGreyhoundMultiplier(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights)

	race := scoredRace()
	race.Discipline = "greyhound"

	base := scorer.Score(scoredRace())
	dogs := scorer.Score(race)
	if math.Abs(dogs.Multiplier-base.Multiplier*1.1) > 1e-9 {
		t.Fatalf("expected greyhound multiplier 1.1, got %v vs %v", dogs.Multiplier, base.Multiplier)
	}
}

func TestScoreNoLiveOdds(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights)
	race := racecard.RaceData{
		ID:        "abc123def456",
		Course:    "epsom",
		FieldSize: 2,
		Runners: []racecard.Runner{
			{Name: "Horse A", OddsStr: "SP"},
			{Name: "Horse B", OddsStr: "NR"},
		},
	}

	breakdown := scorer.Score(race)
	if breakdown.Multiplier != 1.0 {
		t.Fatalf("expected no multipliers without live odds, got %v", breakdown.Multiplier)
	}
	if breakdown.FavoriteOdds != 50 || breakdown.OddsSpread != 50 {
		t.Fatalf("expected neutral odds buckets, got %+v", breakdown)
	}
}
