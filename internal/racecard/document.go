package racecard

import "strings"

// RunnerDoc is one source's observation of a single runner. RunnerID is the
// merge key within a race and must be derived identically by every source
// so the same horse collapses to one record.
type RunnerDoc struct {
	RunnerID string                   `json:"runner_id"`
	Name     *Field[string]           `json:"name"`
	Number   *Field[string]           `json:"number,omitempty"`
	Odds     *Field[string]           `json:"odds,omitempty"`
	Jockey   *Field[string]           `json:"jockey,omitempty"`
	Trainer  *Field[string]           `json:"trainer,omitempty"`
	Extras   map[string]*Field[string] `json:"extras,omitempty"`
}

// RawRaceDocument is one (source, race) observation. A source may emit
// several documents for the same race over the day as odds move.
type RawRaceDocument struct {
	SourceID     string                    `json:"source_id"`
	FetchedAt    string                    `json:"fetched_at"`
	TrackKey     string                    `json:"track_key"`
	RaceKey      string                    `json:"race_key"`
	StartTimeISO string                    `json:"start_time_iso,omitempty"`
	Runners      []RunnerDoc               `json:"runners"`
	Extras       map[string]*Field[string] `json:"extras,omitempty"`
}

// Mergeable reports whether the document carries the keys required to join
// it with observations from other sources. Documents without keys are
// adapter errors and must be dropped before coalescing.
func (d RawRaceDocument) Mergeable() bool {
	return strings.TrimSpace(d.TrackKey) != "" && strings.TrimSpace(d.RaceKey) != ""
}

// DeriveRunnerID builds the stable runner merge key from the saddle cloth
// number and the runner name. It is pure and case-insensitive so every
// adapter computes the same key for the same horse.
func DeriveRunnerID(number, name string) string {
	n := strings.ToLower(strings.Join(strings.Fields(name), " "))
	num := strings.TrimSpace(number)
	if num == "" {
		return n
	}
	return num + ":" + n
}

// Clone returns a deep copy of the document so merge steps never alias
// caller-owned state.
func (d RawRaceDocument) Clone() RawRaceDocument {
	copied := d
	copied.Runners = make([]RunnerDoc, len(d.Runners))
	for i, r := range d.Runners {
		copied.Runners[i] = r.Clone()
	}
	copied.Extras = cloneFieldMap(d.Extras)
	return copied
}

// Clone returns a deep copy of the runner observation.
func (r RunnerDoc) Clone() RunnerDoc {
	copied := r
	copied.Name = r.Name.Clone()
	copied.Number = r.Number.Clone()
	copied.Odds = r.Odds.Clone()
	copied.Jockey = r.Jockey.Clone()
	copied.Trainer = r.Trainer.Clone()
	copied.Extras = cloneFieldMap(r.Extras)
	return copied
}

func cloneFieldMap(m map[string]*Field[string]) map[string]*Field[string] {
	if m == nil {
		return nil
	}
	copied := make(map[string]*Field[string], len(m))
	for k, v := range m {
		copied[k] = v.Clone()
	}
	return copied
}
