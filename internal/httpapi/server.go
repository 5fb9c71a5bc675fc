// Package httpapi serves the read-only race card API over the live merge
// session.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"horse.fit/paddock/internal/globaltime"
	"horse.fit/paddock/internal/pipeline"
	"horse.fit/paddock/internal/racecard"
)

const (
	defaultRaceLimit = 50
	maxRaceLimit     = 500
)

type Options struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	session *pipeline.Session
	logger  zerolog.Logger
	opts    Options
}

type raceStats struct {
	Day            string         `json:"day"`
	Races          int            `json:"races"`
	Runners        int            `json:"runners"`
	WithKnownOdds  int            `json:"with_known_odds"`
	AverageScore   float64        `json:"average_score"`
	ByDiscipline   map[string]int `json:"by_discipline"`
	ByCountry      map[string]int `json:"by_country"`
	UnsyncedBackup bool           `json:"unsynced_backup"`
}

func NewServer(session *pipeline.Session, logger zerolog.Logger, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 8085
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &Server{
		session: session,
		logger:  logger,
		opts: Options{
			Host:            host,
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.session == nil {
		return fmt.Errorf("server is not initialized")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       3600,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	api := e.Group("/api/v1")
	api.GET("/health", s.handleHealth)
	api.GET("/stats", s.handleStats)
	api.GET("/races", s.handleRaces)
	api.GET("/races/:race_id", s.handleRaceDetail)

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Msg("paddock api server started")

	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("paddock api server stopped")
	return nil
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch v := he.Message.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				message = v
			}
		default:
			if text := strings.TrimSpace(http.StatusText(status)); text != "" {
				message = text
			}
		}
	} else if err != nil {
		message = err.Error()
	}

	if status >= 500 {
		_ = internalError(c, "Internal server error")
		return
	}
	_ = fail(c, status, message, nil)
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service":    "paddock",
		"time":       globaltime.UTC(),
		"day":        s.session.Day().Format("2006-01-02"),
		"cache_size": s.session.Size(),
	})
}

func (s *Server) handleStats(c echo.Context) error {
	races := s.session.Snapshot()

	stats := raceStats{
		Day:            s.session.Day().Format("2006-01-02"),
		Races:          len(races),
		ByDiscipline:   map[string]int{},
		ByCountry:      map[string]int{},
		UnsyncedBackup: s.session.Unsynced(),
	}

	scored := 0.0
	for _, race := range races {
		stats.Runners += race.FieldSize
		stats.ByDiscipline[race.Discipline]++
		stats.ByCountry[race.Country]++
		scored += race.ValueScore
		for _, runner := range race.Runners {
			if runner.HasKnownOdds() {
				stats.WithKnownOdds++
				break
			}
		}
	}
	if len(races) > 0 {
		stats.AverageScore = scored / float64(len(races))
	}

	return success(c, stats)
}

func (s *Server) handleRaces(c echo.Context) error {
	opts := pipeline.RankOptions{SortBy: pipeline.SortByScore, Limit: defaultRaceLimit}

	if raw := strings.TrimSpace(c.QueryParam("min_score")); raw != "" {
		minScore, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return failValidation(c, map[string]string{"min_score": "must be a number"})
		}
		opts.MinScore = &minScore
	}

	minFieldSize, err := parseOptionalInt(c.QueryParam("min_field_size"))
	if err != nil {
		return failValidation(c, map[string]string{"min_field_size": err.Error()})
	}
	opts.MinFieldSize = minFieldSize

	maxFieldSize, err := parseOptionalInt(c.QueryParam("max_field_size"))
	if err != nil {
		return failValidation(c, map[string]string{"max_field_size": err.Error()})
	}
	opts.MaxFieldSize = maxFieldSize

	limit, err := parsePositiveInt(c.QueryParam("limit"), defaultRaceLimit, 1, maxRaceLimit)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}
	opts.Limit = limit

	if raw := strings.TrimSpace(c.QueryParam("exclude_race_types")); raw != "" {
		opts.ExcludeRaceTypes = strings.Split(raw, ",")
	}

	switch sortBy := strings.TrimSpace(strings.ToLower(c.QueryParam("sort_by"))); sortBy {
	case "", pipeline.SortByScore:
		opts.SortBy = pipeline.SortByScore
	case pipeline.SortByTime, pipeline.SortByFieldSize, pipeline.SortByCourse:
		opts.SortBy = sortBy
	default:
		return failValidation(c, map[string]string{"sort_by": "must be one of score, time, field_size, course"})
	}

	races := pipeline.Rank(s.session.Snapshot(), opts)
	return success(c, map[string]any{
		"items": races,
		"count": len(races),
		"day":   s.session.Day().Format("2006-01-02"),
	})
}

func (s *Server) handleRaceDetail(c echo.Context) error {
	raceID := strings.TrimSpace(c.Param("race_id"))
	if raceID == "" {
		return failValidation(c, map[string]string{"race_id": "is required"})
	}

	race, ok := s.session.Race(raceID)
	if !ok {
		return failNotFound(c, "Race not found")
	}
	return success(c, raceDetailView(race))
}

func raceDetailView(race racecard.RaceData) map[string]any {
	return map[string]any{
		"race":             race,
		"favorite":         race.Favorite,
		"second_favorite":  race.SecondFavorite,
		"known_odds_count": countKnownOdds(race.Runners),
	}
}

func countKnownOdds(runners []racecard.Runner) int {
	known := 0
	for _, runner := range runners {
		if runner.HasKnownOdds() {
			known++
		}
	}
	return known
}

func parsePositiveInt(raw string, defaultValue, minValue, maxValue int) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if value < minValue || value > maxValue {
		return 0, fmt.Errorf("must be between %d and %d", minValue, maxValue)
	}
	return value, nil
}

func parseOptionalInt(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, fmt.Errorf("must be an integer")
	}
	if value < 0 {
		return nil, fmt.Errorf("must not be negative")
	}
	return &value, nil
}
