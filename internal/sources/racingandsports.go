package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"horse.fit/paddock/internal/normalize"
	"horse.fit/paddock/internal/racecard"
)

// rsMeeting mirrors one meeting entry in the RacingAndSports JSON feed.
type rsMeeting struct {
	VenueName   string   `json:"VenueName"`
	CountryCode string   `json:"CountryCode"`
	Discipline  string   `json:"Discipline"`
	Races       []rsRace `json:"Races"`
}

type rsRace struct {
	RaceNumber int        `json:"RaceNumber"`
	RaceTime   string     `json:"RaceTime"`
	RaceName   string     `json:"RaceName"`
	RaceURL    string     `json:"RaceUrl"`
	Runners    []rsRunner `json:"Runners"`
}

type rsRunner struct {
	Number     string `json:"SaddleNumber"`
	RunnerName string `json:"RunnerName"`
	WinOdds    string `json:"WinOdds"`
	Jockey     string `json:"Jockey"`
	Trainer    string `json:"Trainer"`
}

// RacingAndSportsAdapter shapes RacingAndSports feed files dropped into
// the input directory. The feed is structured JSON, so observed fields get
// the high feed confidence.
type RacingAndSportsAdapter struct{}

func NewRacingAndSportsAdapter() *RacingAndSportsAdapter {
	return &RacingAndSportsAdapter{}
}

func (a *RacingAndSportsAdapter) SourceID() string { return "racingandsports" }

// Fetch scans the input directory for racingandsports*.json files. Missing
// files are not an error; a file that cannot be parsed is.
func (a *RacingAndSportsAdapter) Fetch(ctx context.Context, cfg Config) ([]racecard.RawRaceDocument, error) {
	paths, err := filepath.Glob(filepath.Join(cfg.InputDir, "racingandsports*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan input dir: %w", err)
	}

	var docs []racecard.RawRaceDocument
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read feed file %s: %w", path, err)
		}
		parsed, err := a.ParseFeed(content, filepath.Base(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse feed file %s: %w", path, err)
		}
		docs = append(docs, parsed...)
	}
	return docs, nil
}

// ParseFeed converts one RacingAndSports feed payload into raw race
// documents. Races without a usable post time are skipped; runner-level
// parse problems degrade to absent fields, never failures.
func (a *RacingAndSportsAdapter) ParseFeed(content []byte, sourceFile string, cfg Config) ([]racecard.RawRaceDocument, error) {
	var meetings []rsMeeting
	if err := json.Unmarshal(content, &meetings); err != nil {
		return nil, fmt.Errorf("decode feed JSON: %w", err)
	}

	fetchedAt := cfg.Day.Format("2006-01-02") + "T00:00:00Z"
	var docs []racecard.RawRaceDocument
	for _, meeting := range meetings {
		venue := strings.TrimSpace(meeting.VenueName)
		if venue == "" {
			continue
		}
		for i, race := range meeting.Races {
			raceNumber := race.RaceNumber
			if raceNumber <= 0 {
				raceNumber = i + 1
			}
			postTime := normalize.ParseTime(race.RaceTime)
			if postTime == "" {
				continue
			}

			doc := racecard.RawRaceDocument{
				SourceID:     a.SourceID(),
				FetchedAt:    fetchedAt,
				TrackKey:     normalize.CanonicalTrackKey(venue),
				RaceKey:      normalize.CanonicalRaceKey(venue, raceNumber),
				StartTimeISO: postTime,
				Extras: map[string]*racecard.Field[string]{
					"course":     racecard.NewField(venue, ConfidenceStructuredFeed, "feed: VenueName"),
					"country":    racecard.NewField(meeting.CountryCode, ConfidenceStructuredFeed, "feed: CountryCode"),
					"discipline": racecard.NewField(normalize.Discipline(meeting.Discipline), ConfidenceStructuredFeed, "feed: Discipline"),
					"race_type":  racecard.NewField(normalize.RaceType(race.RaceName), ConfidenceStructuredFeed, "feed: RaceName"),
					"race_url":   racecard.NewField(race.RaceURL, ConfidenceStructuredFeed, "feed: RaceUrl"),
					"source_file": racecard.NewField(sourceFile, ConfidenceStructuredFeed, "input file"),
				},
			}

			for _, runner := range race.Runners {
				name := strings.TrimSpace(runner.RunnerName)
				if name == "" {
					continue
				}
				odds := strings.TrimSpace(runner.WinOdds)
				if odds == "" {
					odds = "SP"
				}
				runnerDoc := racecard.RunnerDoc{
					RunnerID: racecard.DeriveRunnerID(runner.Number, name),
					Name:     racecard.NewField(name, ConfidenceStructuredFeed, "feed: RunnerName"),
					Odds:     racecard.NewField(odds, ConfidenceStructuredFeed, "feed: WinOdds"),
				}
				if number := strings.TrimSpace(runner.Number); number != "" {
					runnerDoc.Number = racecard.NewField(number, ConfidenceStructuredFeed, "feed: SaddleNumber")
				}
				if jockey := strings.TrimSpace(runner.Jockey); jockey != "" {
					runnerDoc.Jockey = racecard.NewField(jockey, ConfidenceStructuredFeed, "feed: Jockey")
				}
				if trainer := strings.TrimSpace(runner.Trainer); trainer != "" {
					runnerDoc.Trainer = racecard.NewField(trainer, ConfidenceStructuredFeed, "feed: Trainer")
				}
				doc.Runners = append(doc.Runners, runnerDoc)
			}

			if len(doc.Runners) == 0 {
				continue
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}
