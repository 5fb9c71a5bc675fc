package db

import "time"

// ArchivedRace maps paddock.races: the finalized view of one race at the
// time of archiving.
type ArchivedRace struct {
	RaceID      string     `gorm:"column:race_id;primaryKey"`
	Course      string     `gorm:"column:course;type:text;not null"`
	RaceTime    string     `gorm:"column:race_time;type:text;not null"`
	RaceType    string     `gorm:"column:race_type;type:text"`
	UTCDateTime *time.Time `gorm:"column:utc_datetime;type:timestamptz"`
	Timezone    string     `gorm:"column:timezone;type:text"`
	FieldSize   int        `gorm:"column:field_size;type:integer;not null;default:0"`
	Country     string     `gorm:"column:country;type:text"`
	Discipline  string     `gorm:"column:discipline;type:text"`
	RaceURL     string     `gorm:"column:race_url;type:text"`
	ValueScore  float64    `gorm:"column:value_score;type:double precision;not null;default:0"`
	DataSources string     `gorm:"column:data_sources;type:text"`
	CreatedAt   time.Time  `gorm:"column:created_at;type:timestamptz;not null;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (ArchivedRace) TableName() string { return "paddock_races" }

// OddsSnapshot maps paddock.odds_snapshots: one observed price per runner
// per batch. The accumulating history is what future market-movement
// signals will read.
type OddsSnapshot struct {
	SnapshotID int64     `gorm:"column:snapshot_id;primaryKey;autoIncrement"`
	RaceID     string    `gorm:"column:race_id;type:text;not null;index"`
	RunnerName string    `gorm:"column:runner_name;type:text;not null"`
	OddsStr    string    `gorm:"column:odds_str;type:text"`
	Odds       *float64  `gorm:"column:odds_decimal;type:double precision"`
	RecordedAt time.Time `gorm:"column:recorded_at;type:timestamptz;not null"`
}

func (OddsSnapshot) TableName() string { return "paddock_odds_snapshots" }
