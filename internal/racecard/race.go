package racecard

import "time"

// Runner is the analysis-ready view of one horse: display name, the raw
// odds string as observed, and the fractional-decimal odds value. Odds is
// nil when the price is unknown (SP, non-runner, scratched); unknown odds
// never become 0 or a sentinel.
type Runner struct {
	Name    string   `json:"name"`
	OddsStr string   `json:"odds_str"`
	Odds    *float64 `json:"odds_decimal"`
}

// HasKnownOdds reports whether the runner carries a real price rather than
// a placeholder.
func (r Runner) HasKnownOdds() bool {
	return r.Odds != nil
}

// RaceData is the cache aggregate for one real-world race. It is keyed by
// the deterministic race ID and progressively enriched as new observations
// arrive during the day. FieldSize, Favorite and SecondFavorite are
// derived from Runners after every merge, never trusted from one source.
type RaceData struct {
	ID             string     `json:"id"`
	Course         string     `json:"course"`
	RaceTime       string     `json:"race_time"`
	RaceType       string     `json:"race_type"`
	UTCDateTime    *time.Time `json:"utc_datetime"`
	LocalTime      string     `json:"local_time"`
	TimezoneName   string     `json:"timezone_name"`
	FieldSize      int        `json:"field_size"`
	Country        string     `json:"country"`
	Discipline     string     `json:"discipline"`
	SourceFile     string     `json:"source_file"`
	RaceURL        string     `json:"race_url"`
	Runners        []Runner   `json:"runners"`
	Favorite       *Runner    `json:"favorite"`
	SecondFavorite *Runner    `json:"second_favorite"`
	ValueScore     float64    `json:"value_score"`
	DataSources    []string   `json:"data_sources"`
}

// Clone returns a deep copy so pure merge functions can build new values
// without aliasing the inputs.
func (r RaceData) Clone() RaceData {
	copied := r
	copied.Runners = append([]Runner(nil), r.Runners...)
	copied.DataSources = append([]string(nil), r.DataSources...)
	if r.UTCDateTime != nil {
		t := *r.UTCDateTime
		copied.UTCDateTime = &t
	}
	copied.Favorite = cloneRunner(r.Favorite)
	copied.SecondFavorite = cloneRunner(r.SecondFavorite)
	return copied
}

func cloneRunner(r *Runner) *Runner {
	if r == nil {
		return nil
	}
	copied := *r
	return &copied
}

// NormalizedRunner is a runner after odds parsing, ready for scoring.
type NormalizedRunner struct {
	RunnerID string         `json:"runner_id"`
	Name     string         `json:"name"`
	OddsRaw  string         `json:"odds_raw,omitempty"`
	Odds     *float64       `json:"odds_decimal"`
	Features map[string]any `json:"features,omitempty"`
}

// NormalizedRace is the analysis-ready form of a coalesced document.
type NormalizedRace struct {
	SchemaVersion string             `json:"schema_version"`
	TrackKey      string             `json:"track_key"`
	RaceKey       string             `json:"race_key"`
	StartTimeISO  string             `json:"start_time_iso,omitempty"`
	Runners       []NormalizedRunner `json:"runners"`
	Provenance    map[string]string  `json:"provenance,omitempty"`
}
