package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/paddock/internal/cli"
	"horse.fit/paddock/internal/config"
	"horse.fit/paddock/internal/logging"
	"horse.fit/paddock/internal/pipeline"
	"horse.fit/paddock/internal/sources"
)

func runOnce(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	sourceIDs := fs.String("sources", "", "Comma-separated source IDs (default: all registered)")
	minScore := fs.Float64("min-score", 0, "Minimum value score filter")
	sortBy := fs.String("sort-by", pipeline.SortByScore, "Sort key: score, time, field_size, course")
	limit := fs.Int("limit", 0, "Maximum races to print (0 = all)")
	minFieldSize := fs.Int("min-field-size", 0, "Minimum field size filter (0 = off)")
	maxFieldSize := fs.Int("max-field-size", 0, "Maximum field size filter (0 = off)")
	excludeTypes := fs.String("exclude-race-types", "", "Comma-separated race types to skip")
	noOdds := fs.Bool("no-odds-mode", false, "Skip scoring and sort by post time")
	timeout := fs.Duration("timeout", 2*time.Minute, "Overall collection timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	session, err := newSession(cfg, logger, pipeline.SessionOptions{
		AutoRestore:   cfg.AutoRestore,
		DisableBackup: cfg.DisableCacheBackup,
		NoOddsMode:    *noOdds,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize session: %v\n", err)
		return 1
	}

	registry := sources.NewDefaultRegistry()
	adapters, err := registry.Select(splitCommaList(*sourceIDs))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to select sources: %v\n", err)
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	opts := pipeline.RankOptions{
		SortBy:           *sortBy,
		Limit:            *limit,
		ExcludeRaceTypes: splitCommaList(*excludeTypes),
		NoOddsMode:       *noOdds,
	}
	if *minScore > 0 {
		opts.MinScore = minScore
	}
	if *minFieldSize > 0 {
		opts.MinFieldSize = minFieldSize
	}
	if *maxFieldSize > 0 {
		opts.MaxFieldSize = maxFieldSize
	}

	report := pipeline.RunOnce(ctx, adapters, sources.Config{
		InputDir: cfg.InputDir,
		Day:      session.Day(),
	}, session, logger, opts)

	for sourceID, fetchErr := range report.Failures {
		fmt.Fprintf(os.Stderr, "Source %s failed: %v\n", sourceID, fetchErr)
	}

	fmt.Printf("Collected %d documents (%d dropped), cache holds %d races.\n",
		report.Collected, report.Dropped, report.Batch.CacheSize)
	printRaces(report.Races, *noOdds)

	if len(report.Failures) > 0 && report.Collected == 0 {
		return 1
	}
	return 0
}
