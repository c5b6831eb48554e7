// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultSweepInterval    = 2 * time.Minute
	defaultSnapshotInterval = 90 * time.Second
)

// Config holds runtime configuration for the server.
type Config struct {
	Port        string `env:"PORT" envDefault:"4000"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/games.db"`
	Provider    string `env:"SCHEDULE_PROVIDER" envDefault:"fixture"`
	// Conservative default cadence to respect upstream quotas.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"2m"`
	AdminToken    string        `env:"ADMIN_TOKEN"`

	Log       LogConfig
	LeagueAPI LeagueAPIConfig
	Metrics   MetricsConfig
	Snapshots SnapshotConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize repairs values that parsed fine but make no operational sense.
func (c *Config) normalize() {
	if c.SweepInterval <= 0 {
		c.SweepInterval = defaultSweepInterval
	}
	if c.Snapshots.Interval <= 0 {
		c.Snapshots.Interval = defaultSnapshotInterval
	}
	if c.Snapshots.Days < 0 {
		c.Snapshots.Days = 0
	}
	if c.Snapshots.FutureDays < 0 {
		c.Snapshots.FutureDays = 0
	}
	if c.Snapshots.DailyHourUTC < 0 || c.Snapshots.DailyHourUTC > 23 {
		c.Snapshots.DailyHourUTC = 2
	}
	// Retain only the rolling past window (+1 for the crossover day);
	// future snapshots are naturally kept.
	c.Snapshots.RetentionDays = c.Snapshots.Days + 1
}
