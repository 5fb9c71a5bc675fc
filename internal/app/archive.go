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
	"horse.fit/paddock/internal/db"
	"horse.fit/paddock/internal/logging"
	"horse.fit/paddock/internal/pipeline"
)

func runArchive(args []string) int {
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Database operation timeout")

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
		AutoRestore:   true,
		DisableBackup: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize session: %v\n", err)
		return 1
	}

	races := session.Snapshot()
	if len(races) == 0 {
		fmt.Fprintln(os.Stderr, "Cache is empty, nothing to archive")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	archive, err := db.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error().Err(err).Msg("archive failed to connect to database")
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		return 1
	}
	defer archive.Close()

	if err := archive.SaveSnapshot(ctx, races); err != nil {
		logger.Error().Err(err).Msg("archive snapshot failed")
		fmt.Fprintf(os.Stderr, "Failed to archive: %v\n", err)
		return 1
	}

	fmt.Printf("Archived %d races for %s.\n", len(races), session.Day().Format("2006-01-02"))
	return 0
}
