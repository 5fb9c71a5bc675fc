package app

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"horse.fit/paddock/internal/cli"
	"horse.fit/paddock/internal/config"
	"horse.fit/paddock/internal/logging"
	"horse.fit/paddock/internal/pipeline"
	payloadschema "horse.fit/paddock/schema"
)

// runPersistent keeps a merge session open across pasted batches. Each
// paste is terminated by the sentinel word on its own line; the cache
// accumulates across pastes and survives restarts through the on-disk
// backup.
func runPersistent(args []string) int {
	fs := flag.NewFlagSet("persistent", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	noOdds := fs.Bool("no-odds-mode", false, "Skip scoring in this session")
	limit := fs.Int("limit", 20, "Races to print after each merge (0 = all)")

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
		// The interactive session always restores: losing a morning of
		// pastes to a crash is the failure mode this command exists to
		// prevent.
		AutoRestore:   true,
		DisableBackup: cfg.DisableCacheBackup,
		NoOddsMode:    *noOdds,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize session: %v\n", err)
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		if flushErr := session.Flush(); flushErr != nil {
			logger.Error().Err(flushErr).Msg("final cache flush failed")
		}
		os.Exit(0)
	}()

	fmt.Printf("Persistent merge session for %s (%d races cached).\n",
		session.Day().Format("2006-01-02"), session.Size())
	fmt.Printf("Paste race document JSON, then type %s on its own line to merge.\n", cfg.PasteSentinel)
	fmt.Println("Type 'show' to list the cache, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	var buf strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.EqualFold(trimmed, cfg.PasteSentinel):
			mergePaste(session, buf.String(), *noOdds, *limit)
			buf.Reset()
		case buf.Len() == 0 && strings.EqualFold(trimmed, "show"):
			printRaces(pipeline.Rank(session.Snapshot(), pipeline.RankOptions{
				SortBy: pipeline.SortByScore, Limit: *limit, NoOddsMode: *noOdds,
			}), *noOdds)
		case buf.Len() == 0 && (strings.EqualFold(trimmed, "quit") || strings.EqualFold(trimmed, "exit")):
			if err := session.Flush(); err != nil {
				logger.Error().Err(err).Msg("final cache flush failed")
				return 1
			}
			fmt.Printf("Session closed with %d races cached.\n", session.Size())
			return 0
		default:
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Input error: %v\n", err)
	}
	if err := session.Flush(); err != nil {
		logger.Error().Err(err).Msg("final cache flush failed")
		return 1
	}
	return 0
}

func mergePaste(session *pipeline.Session, payload string, noOdds bool, limit int) {
	if strings.TrimSpace(payload) == "" {
		fmt.Println("Nothing pasted, nothing merged.")
		return
	}

	docs, err := payloadschema.ValidateBatch([]byte(payload))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Paste rejected: %v\n", err)
		return
	}

	result := session.ApplyDocuments(docs)
	fmt.Printf("Merged: %d added, %d updated, %d dropped, cache holds %d races.\n",
		result.Added, result.Updated, result.Dropped, result.CacheSize)
	printRaces(pipeline.Rank(session.Snapshot(), pipeline.RankOptions{
		SortBy: pipeline.SortByScore, Limit: limit, NoOddsMode: noOdds,
	}), noOdds)
}
