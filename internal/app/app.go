package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fplbot/external/fplapi"
	"github.com/riskibarqy/fplbot/external/slack"
	"github.com/riskibarqy/fplbot/internal/config"
	"github.com/riskibarqy/fplbot/internal/interfaces/httpapi"
	"github.com/riskibarqy/fplbot/internal/observability"
	"github.com/riskibarqy/fplbot/internal/platform/logging"
	"github.com/riskibarqy/fplbot/internal/platform/resilience"
	"github.com/riskibarqy/fplbot/internal/platform/signature"
	"github.com/riskibarqy/fplbot/internal/platform/worker"
	"github.com/riskibarqy/fplbot/internal/usecase"
)

const metricsNamespace = "fplbot"

// App owns the long-lived pieces that need an ordered shutdown.
type App struct {
	Server *http.Server

	pool   *worker.Pool
	logger *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics(metricsNamespace)
	}

	pool, err := worker.NewPool(cfg.WorkerPoolSize, logger)
	if err != nil {
		return nil, err
	}

	fplClient := fplapi.NewClient(fplapi.ClientConfig{
		BaseURL: cfg.FPLBaseURL,
		Timeout: cfg.FPLTimeout,
		Logger:  logger,
		Metrics: metrics,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})
	notifier := slack.NewNotifier(slack.NotifierConfig{
		BaseURL: cfg.SlackAPIBaseURL,
		Token:   cfg.SlackBotToken,
		Timeout: cfg.SlackTimeout,
		Logger:  logger,
		Metrics: metrics,
	})

	standingsSvc := usecase.NewStandingsService(fplClient, notifier, usecase.StandingsConfig{
		LeagueID:         cfg.FPLLeagueID,
		EntryConcurrency: cfg.FPLEntryConcurrency,
	}, logger, metrics)
	eventSvc := usecase.NewEventService(standingsSvc, pool, logger)

	verifier := signature.NewVerifier(cfg.SlackSigningSecret, signature.WithReplayWindow(cfg.SlackReplayWindow))
	handler := httpapi.NewHandler(eventSvc, verifier, httpapi.HandlerConfig{
		StrictEventVerification: cfg.SlackStrictEventVerification,
	}, logger, metrics)

	var metricsHandler http.Handler
	if metrics != nil {
		metricsHandler = metrics.Handler()
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, metricsHandler, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{Server: server, pool: pool, logger: logger}, nil
}

// Shutdown stops accepting requests, then gives queued standings tasks up to
// the remaining budget to finish.
func (a *App) Shutdown(ctx context.Context) error {
	serverErr := a.Server.Shutdown(ctx)

	budget := time.Second
	if deadline, ok := ctx.Deadline(); ok {
		budget = time.Until(deadline)
	}
	if budget <= 0 {
		budget = time.Millisecond
	}
	poolErr := a.pool.Release(budget)

	return errors.Join(serverErr, poolErr)
}
