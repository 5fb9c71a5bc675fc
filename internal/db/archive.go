// Package db provides the optional Postgres archive: finalized races and
// per-batch odds snapshots. The fusion core never depends on it; the
// archive exists to accumulate the price history that market-movement
// signals will need.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"horse.fit/paddock/internal/globaltime"
	"horse.fit/paddock/internal/racecard"
)

// Archive wraps the gorm handle for race archiving.
type Archive struct {
	gorm   *gorm.DB
	logger zerolog.Logger
}

// Open connects to Postgres and migrates the archive tables.
func Open(ctx context.Context, databaseURL string, logger zerolog.Logger) (*Archive, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for archiving")
	}

	handle, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := handle.WithContext(ctx).AutoMigrate(&ArchivedRace{}, &OddsSnapshot{}); err != nil {
		return nil, fmt.Errorf("migrate archive tables: %w", err)
	}

	return &Archive{gorm: handle, logger: logger}, nil
}

// Close releases the underlying connection pool.
func (a *Archive) Close() error {
	if a == nil || a.gorm == nil {
		return nil
	}
	sqlDB, err := a.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveSnapshot upserts the race rows and appends one odds snapshot per
// runner with a known or placeholder price.
func (a *Archive) SaveSnapshot(ctx context.Context, races []racecard.RaceData) error {
	if a == nil || a.gorm == nil {
		return fmt.Errorf("archive is not initialized")
	}
	if len(races) == 0 {
		return nil
	}

	recordedAt := globaltime.UTC()
	rows := make([]ArchivedRace, 0, len(races))
	var snapshots []OddsSnapshot
	for _, race := range races {
		rows = append(rows, ArchivedRace{
			RaceID:      race.ID,
			Course:      race.Course,
			RaceTime:    race.RaceTime,
			RaceType:    race.RaceType,
			UTCDateTime: race.UTCDateTime,
			Timezone:    race.TimezoneName,
			FieldSize:   race.FieldSize,
			Country:     race.Country,
			Discipline:  race.Discipline,
			RaceURL:     race.RaceURL,
			ValueScore:  race.ValueScore,
			DataSources: strings.Join(race.DataSources, ","),
		})
		for _, runner := range race.Runners {
			snapshots = append(snapshots, OddsSnapshot{
				RaceID:     race.ID,
				RunnerName: runner.Name,
				OddsStr:    runner.OddsStr,
				Odds:       runner.Odds,
				RecordedAt: recordedAt,
			})
		}
	}

	return a.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "race_id"}},
			UpdateAll: true,
		}).Create(&rows).Error; err != nil {
			return fmt.Errorf("upsert races: %w", err)
		}
		if len(snapshots) > 0 {
			if err := tx.Create(&snapshots).Error; err != nil {
				return fmt.Errorf("insert odds snapshots: %w", err)
			}
		}
		a.logger.Info().Int("races", len(rows)).Int("snapshots", len(snapshots)).Msg("archive snapshot saved")
		return nil
	})
}
