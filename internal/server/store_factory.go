package server

import (
	"fmt"
	"log/slog"
	"time"

	"baseball-games-service/internal/app/games"
	"baseball-games-service/internal/config"
	"baseball-games-service/internal/snapshots"
	"baseball-games-service/internal/store"
	"baseball-games-service/internal/store/sqlite"
)

// buildStore selects the persistence tier. "sqlite" opens the durable
// store; anything else runs on the in-memory store, rehydrated from the
// most recent snapshot slates so a restart does not lose scored games.
func buildStore(cfg config.Config, logger *slog.Logger) (games.Store, func() error, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, st.Close, nil
	case "memory", "":
	default:
		if logger != nil {
			logger.Warn("unknown store driver, falling back to memory", slog.String("driver", cfg.StoreDriver))
		}
	}

	ms := store.NewMemoryStore()
	rehydrate(ms, cfg, logger)
	return ms, nil, nil
}

func rehydrate(ms *store.MemoryStore, cfg config.Config, logger *slog.Logger) {
	if !cfg.Snapshots.Enabled {
		return
	}
	fs := snapshots.NewFSStore(cfg.Snapshots.Dir)
	states, err := fs.RecentStates(time.Now(), cfg.Snapshots.Days, cfg.Snapshots.FutureDays)
	if err != nil {
		if logger != nil {
			logger.Warn("snapshot rehydrate failed, starting empty", "error", err)
		}
		return
	}
	if len(states) == 0 {
		return
	}
	ms.SetGames(states)
	if logger != nil {
		logger.Info("store rehydrated from snapshots", slog.Int("games", len(states)))
	}
}
