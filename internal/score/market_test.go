package score

import (
	"math"
	"testing"

	"horse.fit/paddock/internal/racecard"
)

func TestOverround(t *testing.T) {
	t.Parallel()

	race := racecard.RaceData{
		Runners: []racecard.Runner{
			{Name: "Evens", Odds: odds(1.0)},      // decimal 2.0, implied 0.5
			{Name: "ThreeToOne", Odds: odds(3.0)}, // decimal 4.0, implied 0.25
			{Name: "NoPrice", OddsStr: "SP"},
		},
	}

	got := Overround(race)
	if math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("Overround = %v, want 0.75", got)
	}
}

func TestOverroundNoPrices(t *testing.T) {
	t.Parallel()

	race := racecard.RaceData{Runners: []racecard.Runner{{Name: "A", OddsStr: "SP"}}}
	if got := Overround(race); got != 0 {
		t.Fatalf("expected zero overround without prices, got %v", got)
	}
	if got := MarketConsensus(race); got != 0 {
		t.Fatalf("expected zero consensus without prices, got %v", got)
	}
}

func TestMarketConsensus(t *testing.T) {
	t.Parallel()

	race := racecard.RaceData{
		Runners: []racecard.Runner{
			{Name: "A", Odds: odds(1.0)},
			{Name: "B", Odds: odds(1.0)},
		},
	}
	// Two even-money runners give an overround of 1.0 and consensus 1.0.
	if got := MarketConsensus(race); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("MarketConsensus = %v, want 1.0", got)
	}
}
