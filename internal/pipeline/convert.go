package pipeline

import (
	"strings"
	"time"

	"horse.fit/paddock/internal/fusion"
	"horse.fit/paddock/internal/normalize"
	"horse.fit/paddock/internal/racecard"
)

// RaceFromDocument converts a coalesced raw race document into the cache
// aggregate form: runner odds parsed, scalar context lifted from the
// document extras, post time anchored to the given calendar day in the
// track's timezone. Derived attributes (field size, favorites) are
// recomputed, never trusted from the document.
func RaceFromDocument(doc racecard.RawRaceDocument, day time.Time, zones Zones) racecard.RaceData {
	normalized := normalize.Document(doc)

	course := extraValue(doc, "course")
	if course == "" {
		course = strings.ReplaceAll(doc.TrackKey, "_", " ")
	}
	course = normalize.CourseName(course)

	postTime := normalize.ParseTime(normalized.StartTimeISO)
	country := extraValue(doc, "country")
	discipline := normalize.Discipline(extraValue(doc, "discipline"))

	raceType := ""
	if raw := extraValue(doc, "race_type"); raw != "" {
		raceType = normalize.RaceType(raw)
	}

	race := racecard.RaceData{
		ID:           normalize.RaceID(course, day, postTime),
		Course:       course,
		RaceTime:     postTime,
		RaceType:     raceType,
		LocalTime:    postTime,
		TimezoneName: zones.ForTrack(course, country),
		Country:      country,
		Discipline:   discipline,
		SourceFile:   extraValue(doc, "source_file"),
		RaceURL:      extraValue(doc, "race_url"),
		DataSources:  []string{doc.SourceID},
	}

	race.UTCDateTime = combineUTC(day, postTime, race.TimezoneName)

	for _, runner := range normalized.Runners {
		race.Runners = append(race.Runners, racecard.Runner{
			Name:    runner.Name,
			OddsStr: runner.OddsRaw,
			Odds:    runner.Odds,
		})
	}

	return fusion.Enrich(race)
}

func extraValue(doc racecard.RawRaceDocument, key string) string {
	if field, ok := doc.Extras[key]; ok && field != nil {
		return strings.TrimSpace(field.Value)
	}
	return ""
}

// combineUTC anchors a local "HH:MM" post time on the given day in the
// named zone and converts to UTC. Unknown zones or times yield nil.
func combineUTC(day time.Time, postTime, zoneName string) *time.Time {
	if postTime == "" {
		return nil
	}
	clock, err := time.Parse("15:04", postTime)
	if err != nil {
		return nil
	}
	location, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil
	}
	local := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, location)
	utc := local.UTC()
	return &utc
}
