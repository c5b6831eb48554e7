package server

import (
	"log/slog"
	"time"

	"baseball-games-service/internal/config"
	"baseball-games-service/internal/metrics"
	"baseball-games-service/internal/schedule"
)

// providerFactory assembles the schedule provider with the shared wrappers
// (call logging, rate limit, retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) schedule.Provider {
	name := normalizeProviderName(cfg.Provider, nil)
	base := selectProvider(cfg, f.logger)
	logged := schedule.NewLoggingProvider(base, name, f.logger)
	// Shared rate limiter to respect the upstream quota even when the
	// sweep interval is configured shorter.
	limited := schedule.NewRateLimitedProvider(logged, time.Minute, f.logger)
	return schedule.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}
