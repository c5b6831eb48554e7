package schedule

import (
	"context"
	"log/slog"

	"baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/logging"
)

// loggingProvider wraps a Provider and logs each fetch with its outcome.
type loggingProvider struct {
	next   Provider
	name   string
	logger *slog.Logger
}

// NewLoggingProvider decorates a provider with fetch logging under the given name.
func NewLoggingProvider(next Provider, name string, logger *slog.Logger) Provider {
	if name == "" {
		name = "provider"
	}
	return &loggingProvider{next: next, name: name, logger: logger}
}

func (p *loggingProvider) FetchSchedule(ctx context.Context, date string) ([]games.GameState, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}

	states, err := p.next.FetchSchedule(ctx, date)
	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "schedule fetch failed",
			logging.FieldDate, date, "err", err)
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelInfo, p.name, "schedule fetched",
		logging.FieldDate, date, logging.FieldCount, len(states))
	return states, nil
}

// logWithProvider emits a log entry if logger is non-nil and always includes provider name.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}
