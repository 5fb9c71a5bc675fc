package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"horse.fit/paddock/internal/cli"
	"horse.fit/paddock/internal/config"
	"horse.fit/paddock/internal/logging"
	"horse.fit/paddock/internal/pipeline"
	"horse.fit/paddock/internal/racecard"
	payloadschema "horse.fit/paddock/schema"
)

func runMerge(args []string) int {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	noOdds := fs.Bool("no-odds-mode", false, "Skip scoring for this batch")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "merge requires at least one race document file")
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

	var docs []racecard.RawRaceDocument
	failed := 0
	for _, path := range files {
		payload, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot read %s: %v\n", path, err)
			failed++
			continue
		}
		batch, err := payloadschema.ValidateBatch(payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid %s: %v\n", path, err)
			failed++
			continue
		}
		docs = append(docs, batch...)
	}

	if len(docs) == 0 {
		fmt.Fprintln(os.Stderr, "No valid race documents to merge")
		return 1
	}

	result := session.ApplyDocuments(docs)
	fmt.Printf("Merged %d documents: %d added, %d updated, %d dropped, cache holds %d races.\n",
		len(docs), result.Added, result.Updated, result.Dropped, result.CacheSize)
	if !result.Persisted && !cfg.DisableCacheBackup {
		fmt.Fprintln(os.Stderr, "Warning: cache backup could not be written")
	}

	if failed > 0 {
		return 1
	}
	return 0
}
