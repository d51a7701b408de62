package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/seenimoa/earningstracker/internal/config"
	"github.com/seenimoa/earningstracker/internal/infra"
	"github.com/seenimoa/earningstracker/internal/logger"
	"github.com/seenimoa/earningstracker/internal/metrics"
	"github.com/seenimoa/earningstracker/internal/provider"
	"github.com/seenimoa/earningstracker/internal/providers"
	"github.com/seenimoa/earningstracker/internal/tracing"
	"github.com/seenimoa/earningstracker/internal/tracker"
)

// app holds the components every command shares.
type app struct {
	log      *zap.Logger
	metrics  *metrics.Manager
	registry *provider.Registry
	tracker  *tracker.Service
	shutdown tracing.ShutdownFunc
}

// newApp builds the logger, tracer, metrics, provider registry and
// tracker service from the loaded config.
func newApp(cfg *config.Config) (*app, error) {
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)

	// Spans go to stderr so --json output on stdout stays clean.
	shutdown, err := tracing.Init(cfg.Tracing, version, os.Stderr)
	if err != nil {
		return nil, err
	}

	m := metrics.NewManager()
	client := infra.NewClient(
		infra.WithTimeout(cfg.Upstream.Timeout()),
		infra.WithUserAgent(cfg.Upstream.UserAgent),
		infra.WithMetrics(m),
	)

	reg := provider.NewRegistry()
	if err := providers.RegisterAllTo(reg, client, cfg); err != nil {
		return nil, err
	}

	svc, err := tracker.NewFromRegistry(reg,
		cfg.Earnings.UniverseSource,
		cfg.Earnings.Source,
		providers.NewsProviderName(cfg.News.Source),
		tracker.WithLogger(log.Named("tracker")),
		tracker.WithMetrics(m),
		tracker.WithTimeout(cfg.Upstream.Timeout()),
		tracker.WithConcurrency(cfg.Earnings.Concurrency),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		log:      log,
		metrics:  m,
		registry: reg,
		tracker:  svc,
		shutdown: shutdown,
	}, nil
}

// Close flushes spans and buffered log entries.
func (a *app) Close() {
	if err := a.shutdown(context.Background()); err != nil {
		a.log.Warn("tracer shutdown", zap.Error(err))
	}
	_ = a.log.Sync()
}
