package normalize

import (
	"horse.fit/paddock/internal/racecard"
)

// SchemaVersion identifies the normalized-race shape.
const SchemaVersion = "2.0"

// Document transforms a coalesced raw race document into the analysis-ready
// NormalizedRace. Odds parsing failures become nil odds, never errors; the
// per-field confidences travel along in Features so downstream consumers
// can weigh the data.
func Document(doc racecard.RawRaceDocument) racecard.NormalizedRace {
	runners := make([]racecard.NormalizedRunner, 0, len(doc.Runners))
	for _, r := range doc.Runners {
		oddsRaw := ""
		if r.Odds != nil {
			oddsRaw = r.Odds.Value
		}

		features := map[string]any{
			"field_confidence": map[string]float64{
				"name":    fieldConfidence(r.Name),
				"odds":    fieldConfidence(r.Odds),
				"jockey":  fieldConfidence(r.Jockey),
				"trainer": fieldConfidence(r.Trainer),
			},
		}
		if r.Jockey != nil {
			features["jockey"] = r.Jockey.Value
		}
		if r.Trainer != nil {
			features["trainer"] = r.Trainer.Value
		}
		for key, extra := range r.Extras {
			if extra != nil {
				features[key] = extra.Value
			}
		}

		name := "UNKNOWN"
		if r.Name != nil {
			name = r.Name.Value
		}

		runners = append(runners, racecard.NormalizedRunner{
			RunnerID: r.RunnerID,
			Name:     name,
			OddsRaw:  oddsRaw,
			Odds:     ParseOdds(oddsRaw),
			Features: features,
		})
	}

	return racecard.NormalizedRace{
		SchemaVersion: SchemaVersion,
		TrackKey:      doc.TrackKey,
		RaceKey:       doc.RaceKey,
		StartTimeISO:  doc.StartTimeISO,
		Runners:       runners,
		Provenance: map[string]string{
			"source_id":  doc.SourceID,
			"fetched_at": doc.FetchedAt,
		},
	}
}

func fieldConfidence(f *racecard.Field[string]) float64 {
	if f == nil {
		return 0.0
	}
	return f.Confidence
}
