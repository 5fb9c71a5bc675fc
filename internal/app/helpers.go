package app

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/paddock/internal/cache"
	"horse.fit/paddock/internal/config"
	"horse.fit/paddock/internal/pipeline"
	"horse.fit/paddock/internal/racecard"
	"horse.fit/paddock/internal/score"
)

func newSession(cfg *config.Config, logger zerolog.Logger, opts pipeline.SessionOptions) (*pipeline.Session, error) {
	overrides, err := cfg.TrackTimezoneMap()
	if err != nil {
		return nil, err
	}

	store := cache.NewStore(cfg.CacheDir, logger)
	scorer := score.NewScorer(cfg.ScorerWeights())
	zones := pipeline.Zones{Default: cfg.DefaultTimezone, Tracks: overrides}

	session := pipeline.NewSession(store, scorer, zones, logger, opts)
	if _, err := session.Rollover(); err != nil {
		logger.Warn().Err(err).Msg("cache restore failed, starting empty")
	}
	return session, nil
}

func splitCommaList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printRaces(races []racecard.RaceData, noOdds bool) {
	if len(races) == 0 {
		fmt.Println("No races matched the filters.")
		return
	}

	for i, race := range races {
		line := fmt.Sprintf("%2d. %-24s %-7s field=%-3d", i+1, race.Course, race.RaceTime, race.FieldSize)
		if !noOdds {
			line += fmt.Sprintf(" score=%5.1f", race.ValueScore)
		}
		if race.Favorite != nil && race.Favorite.Odds != nil {
			line += fmt.Sprintf(" fav=%s (%s)", race.Favorite.Name, race.Favorite.OddsStr)
		}
		if len(race.DataSources) > 0 {
			line += " [" + strings.Join(race.DataSources, ",") + "]"
		}
		fmt.Println(line)
	}
}
