package server

import (
	"log/slog"
	"time"

	"baseball-games-service/internal/config"
	"baseball-games-service/internal/schedule"
	"baseball-games-service/internal/snapshots"
)

type snapshotComponents struct {
	writer *snapshots.Writer
	syncer *snapshots.Syncer
}

// buildSnapshots assembles the slate writer and the background syncer. The
// syncer is returned unstarted; Run launches it under the server context.
func buildSnapshots(cfg config.Config, provider schedule.Provider, source snapshots.GameSource, logger *slog.Logger, loc *time.Location) snapshotComponents {
	writer := snapshots.NewWriter(cfg.Snapshots.Dir, cfg.Snapshots.RetentionDays)
	syncer := snapshots.NewSyncer(provider, source, writer, snapshots.SyncConfig{
		Enabled:      cfg.Snapshots.Enabled,
		Days:         cfg.Snapshots.Days,
		FutureDays:   cfg.Snapshots.FutureDays,
		Interval:     cfg.Snapshots.Interval,
		DailyHourUTC: cfg.Snapshots.DailyHourUTC,
	}, logger, loc)

	return snapshotComponents{
		writer: writer,
		syncer: syncer,
	}
}
