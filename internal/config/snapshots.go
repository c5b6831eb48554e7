package config

import "time"

// SnapshotConfig controls automatic snapshot backfill/prune behavior.
type SnapshotConfig struct {
	Enabled    bool   `env:"SNAPSHOT_ENABLED" envDefault:"true"`
	Dir        string `env:"SNAPSHOT_DIR" envDefault:"data/snapshots"`
	Days       int    `env:"SNAPSHOT_DAYS" envDefault:"7"`        // how many past days to maintain
	FutureDays int    `env:"SNAPSHOT_FUTURE_DAYS" envDefault:"7"` // how many future days to prefetch
	// Snapshot fetch cadence during backfill; spaced to stay under
	// upstream quota and leave headroom.
	Interval     time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"90s"`
	DailyHourUTC int           `env:"SNAPSHOT_DAILY_HOUR" envDefault:"2"` // UTC hour for daily prune/backfill

	// RetentionDays is derived from Days in normalize, never parsed.
	RetentionDays int `env:"-"`
}
