// Package score ranks races by structural betting value. The scorer looks
// only at the shape of the market: field size, favorite price, the spread
// between the top two favorites and how complete the underlying data is.
// It deliberately ignores handicapping metrics such as jockey or trainer
// form. Every threshold is a piecewise-constant table, so identical input
// always yields an identical score and breakdown.
package score

import (
	"horse.fit/paddock/internal/racecard"
)

// Weights combines the four signals into the final score.
type Weights struct {
	FieldSize    float64
	FavoriteOdds float64
	OddsSpread   float64
	DataQuality  float64
}

// DefaultWeights matches the tuned production configuration.
var DefaultWeights = Weights{
	FieldSize:    0.35,
	FavoriteOdds: 0.45,
	OddsSpread:   0.15,
	DataQuality:  0.05,
}

// Breakdown reports the final score together with the raw per-signal
// bucket values and the applied multiplier, so a reader can reconstruct
// exactly why a race ranked where it did.
type Breakdown struct {
	Total        float64 `json:"total"`
	FieldSize    float64 `json:"field_size"`
	FavoriteOdds float64 `json:"favorite_odds"`
	OddsSpread   float64 `json:"odds_spread"`
	DataQuality  float64 `json:"data_quality"`
	Multiplier   float64 `json:"multiplier"`
}

// Scorer applies the weighted signal sum with optional per-track profile
// multipliers.
type Scorer struct {
	weights  Weights
	profiles map[string]float64
}

// defaultProfiles raises sensitivity at venues whose markets historically
// reward structural plays.
var defaultProfiles = map[string]float64{
	"ascot": 1.05,
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights, profiles: defaultProfiles}
}

// Score computes the value score for a race. Races with no runners score
// zero. The result is capped to [0, 100].
func (s *Scorer) Score(race racecard.RaceData) Breakdown {
	if s == nil || len(race.Runners) == 0 {
		return Breakdown{Multiplier: 1.0}
	}

	breakdown := Breakdown{
		FieldSize:    fieldSizeScore(race.FieldSize),
		FavoriteOdds: favoriteOddsScore(race.Favorite),
		OddsSpread:   oddsSpreadScore(race.Favorite, race.SecondFavorite),
		DataQuality:  dataQualityScore(race),
		Multiplier:   1.0,
	}

	base := breakdown.FieldSize*s.weights.FieldSize +
		breakdown.FavoriteOdds*s.weights.FavoriteOdds +
		breakdown.OddsSpread*s.weights.OddsSpread +
		breakdown.DataQuality*s.weights.DataQuality

	if hasLiveOdds(race) {
		breakdown.Multiplier *= 1.2
	}
	if race.Discipline == "greyhound" {
		breakdown.Multiplier *= 1.1
	}
	if race.FieldSize <= 6 && breakdown.OddsSpread > 80 {
		breakdown.Multiplier *= 1.15
	}
	if profile, ok := s.profiles[race.Course]; ok {
		breakdown.Multiplier *= profile
	}

	total := base * breakdown.Multiplier
	if total > 100.0 {
		total = 100.0
	}
	if total < 0.0 {
		total = 0.0
	}
	breakdown.Total = total
	return breakdown
}

func fieldSizeScore(size int) float64 {
	switch {
	case size >= 3 && size <= 5:
		return 100.0
	case size >= 6 && size <= 8:
		return 85.0
	case size >= 9 && size <= 12:
		return 60.0
	default:
		return 20.0
	}
}

func favoriteOddsScore(favorite *racecard.Runner) float64 {
	if favorite == nil || !favorite.HasKnownOdds() {
		return 50.0
	}
	odds := *favorite.Odds
	switch {
	case odds >= 1.0 && odds <= 1.5:
		return 100.0
	case odds > 1.5 && odds <= 2.5:
		return 90.0
	case odds > 2.5 && odds <= 4.0:
		return 75.0
	case odds >= 0.5 && odds < 1.0:
		return 85.0
	case odds < 0.5:
		return 60.0
	default:
		return 40.0
	}
}

func oddsSpreadScore(favorite, secondFavorite *racecard.Runner) float64 {
	if favorite == nil || secondFavorite == nil {
		return 50.0
	}
	if !favorite.HasKnownOdds() || !secondFavorite.HasKnownOdds() {
		return 50.0
	}
	spread := *secondFavorite.Odds - *favorite.Odds
	switch {
	case spread >= 2.0:
		return 100.0
	case spread >= 1.5:
		return 90.0
	case spread >= 1.0:
		return 80.0
	case spread >= 0.5:
		return 60.0
	default:
		return 40.0
	}
}

func dataQualityScore(race racecard.RaceData) float64 {
	score := 0.0
	for _, r := range race.Runners {
		if r.OddsStr != "" {
			score += 40.0
			break
		}
	}
	if race.Favorite != nil && race.SecondFavorite != nil {
		score += 30.0
	}
	if race.RaceURL != "" {
		score += 20.0
	}
	if len(race.DataSources) > 1 {
		score += 10.0
	}
	if score > 100.0 {
		score = 100.0
	}
	return score
}

var placeholderOdds = map[string]struct{}{
	"": {}, "SP": {}, "NR": {}, "VOID": {}, "SCR": {},
}

func hasLiveOdds(race racecard.RaceData) bool {
	for _, r := range race.Runners {
		if _, placeholder := placeholderOdds[r.OddsStr]; !placeholder {
			return true
		}
	}
	return false
}
