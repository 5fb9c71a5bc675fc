package score

import (
	"horse.fit/paddock/internal/normalize"
	"horse.fit/paddock/internal/racecard"
)

// Overround sums the implied probabilities (1 / decimal odds) across all
// runners with a known price. Values above 1.0 reflect bookmaker margin;
// zero means no runner has a price yet.
func Overround(race racecard.RaceData) float64 {
	total := 0.0
	for _, r := range race.Runners {
		if !r.HasKnownOdds() {
			continue
		}
		decimal := normalize.DecimalOdds(*r.Odds)
		if decimal > 0 {
			total += 1.0 / decimal
		}
	}
	return total
}

// MarketConsensus is the inverse overround: higher values indicate a more
// competitive, lower-margin market. Zero when the market has no prices.
func MarketConsensus(race racecard.RaceData) float64 {
	overround := Overround(race)
	if overround <= 0 {
		return 0.0
	}
	return 1.0 / overround
}
