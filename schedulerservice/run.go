// Package schedulerservice boots the availability service: configuration,
// token store, calendar provider, analysis engine, health monitoring, and the
// HTTP server.
package schedulerservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowgo/scheduler/internal/api"
	"github.com/glowgo/scheduler/internal/calendar"
	"github.com/glowgo/scheduler/internal/calendar/google"
	"github.com/glowgo/scheduler/internal/calendar/ics"
	"github.com/glowgo/scheduler/internal/config"
	"github.com/glowgo/scheduler/internal/engine"
	"github.com/glowgo/scheduler/internal/health"
	"github.com/glowgo/scheduler/internal/logger"
	"github.com/glowgo/scheduler/internal/scorer/ollama"
	"github.com/glowgo/scheduler/internal/store"
	"github.com/glowgo/scheduler/internal/store/postgres"
	"github.com/glowgo/scheduler/internal/store/sqlite"
)

// Run starts the scheduler service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("scheduler-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Str("calendar_provider", cfg.CalendarProvider).
		Int("http_port", cfg.HTTPPort).
		Msg("Scheduler service starting")

	ctx, stop := newServerContext()
	defer stop()

	st, err := newStore(cfg, log)
	if err != nil {
		return err
	}

	provider, err := newProvider(cfg)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Calendar provider unavailable")
		return err
	}

	classifier, scorerProvider := newClassifier(cfg, log)

	eng := engine.New(st, provider, classifier, engine.Options{
		Policy: engine.SlotPolicy{
			BusinessStartHour: cfg.BusinessStartHour,
			BusinessEndHour:   cfg.BusinessEndHour,
			BufferMinutes:     cfg.BufferMinutes,
		},
		DefaultLocation:  cfg.Location(),
		HorizonDays:      cfg.HorizonDays,
		MaxSuggestions:   cfg.MaxSuggestions,
		ServiceDurations: cfg.ServiceDurations,
	}, log)

	router := api.NewRouter(eng, st.Tokens())

	svcHealth := startHealthCheckers(ctx, cfg, log, st, scorerProvider)

	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newStore opens the configured token store driver.
func newStore(cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			log.Error().Stack().Err(err).Msg("Postgres unavailable")
			return nil, err
		}
		return postgres.NewWithDB(db), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Error().Stack().Err(err).Msg("SQLite unavailable")
			return nil, err
		}
		st, err := sqlite.NewWithDB(db)
		if err != nil {
			log.Error().Stack().Err(err).Msg("SQLite schema setup failed")
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unsupported DB driver: %s", cfg.DBDriver)
	}
}

func newProvider(cfg *config.Config) (calendar.Provider, error) {
	switch cfg.CalendarProvider {
	case "google":
		return google.New(), nil
	case "ics":
		return ics.New(), nil
	default:
		return nil, fmt.Errorf("unsupported calendar provider: %s", cfg.CalendarProvider)
	}
}

// newClassifier picks the importance classifier. The scorer provider is also
// returned so a health checker can watch it; nil when scoring is disabled.
func newClassifier(cfg *config.Config, log zerolog.Logger) (engine.Classifier, *ollama.Provider) {
	if cfg.ScorerProvider == "ollama" {
		p := ollama.New(cfg.OllamaURL, cfg.ScorerModel)
		log.Info().Str("model", cfg.ScorerModel).Str("url", cfg.OllamaURL).Msg("importance scoring enabled")
		return engine.NewScoreClassifier(p, cfg.MaxScoredEvents, log), p
	}
	return engine.NewKeywordClassifier(engine.DefaultKeywords()), nil
}

// startHealthCheckers starts component checkers and the service-level
// aggregator; binds health into the API.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store, scorerProvider *ollama.Provider) *health.ServiceHealthChecker {
	var checkers []health.HealthChecker
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	if pinger, ok := st.(health.HealthPinger); ok {
		storeChecker := health.NewComponentHealthChecker("store", pinger, log, probeTimeout)
		go storeChecker.Start(ctx, interval)
		checkers = append(checkers, storeChecker)
	}

	if scorerProvider != nil {
		scorerChecker := health.NewComponentHealthChecker("scorer", scorerProvider, log, probeTimeout)
		go scorerChecker.Start(ctx, interval)
		checkers = append(checkers, scorerChecker)
	}

	svcHealth := health.NewServiceHealthChecker(log, checkers...)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
