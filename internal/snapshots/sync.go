package snapshots

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"time"

	domaingames "baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/schedule"
	"baseball-games-service/internal/timeutil"
)

// GameSource lists stored states for persistence and accepts backfilled
// schedule seeds.
type GameSource interface {
	List(ctx context.Context) ([]domaingames.GameState, error)
	Seed(ctx context.Context, seeds []domaingames.GameState) (int, error)
}

// Syncer persists the store to dated slates on an interval and backfills
// missing schedule days from the provider.
type Syncer struct {
	provider  schedule.Provider
	source    GameSource
	writer    *Writer
	cfg       SyncConfig
	logger    *slog.Logger
	loc       *time.Location
	now       func() time.Time
	newTicker func(time.Duration) *time.Ticker
}

// SyncConfig controls snapshot sync behavior.
type SyncConfig struct {
	Enabled      bool
	Days         int
	FutureDays   int
	Interval     time.Duration
	DailyHourUTC int
}

// NewSyncer constructs a snapshot syncer. loc picks the calendar used to
// date slates; nil means UTC.
func NewSyncer(provider schedule.Provider, source GameSource, writer *Writer, cfg SyncConfig, logger *slog.Logger, loc *time.Location) *Syncer {
	if cfg.Days <= 0 {
		cfg.Days = 7
	}
	if cfg.FutureDays < 0 {
		cfg.FutureDays = 0
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.DailyHourUTC < 0 || cfg.DailyHourUTC > 23 {
		cfg.DailyHourUTC = 2
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Syncer{
		provider:  provider,
		source:    source,
		writer:    writer,
		cfg:       cfg,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
		newTicker: time.NewTicker,
	}
}

// Run persists the current store, backfills missing schedule days and then
// keeps both up to date in the background. Callers should run this in a
// goroutine.
func (s *Syncer) Run(ctx context.Context) {
	if s == nil || !s.cfg.Enabled || s.writer == nil {
		return
	}
	if s.provider == nil && s.source == nil {
		return
	}
	s.logInfo(
		"snapshot sync starting",
		"past_days", s.cfg.Days,
		"future_days", s.cfg.FutureDays,
		"interval", s.cfg.Interval.String(),
		"daily_hour_utc", s.cfg.DailyHourUTC,
	)
	s.persist(ctx)
	s.backfill(ctx, s.now().In(s.loc))
	go s.loop(ctx)
}

func (s *Syncer) loop(ctx context.Context) {
	persist := s.newTicker(s.cfg.Interval)
	defer persist.Stop()
	daily := s.newTicker(time.Hour)
	defer daily.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-persist.C:
			s.persist(ctx)
		case now := <-daily.C:
			if now.UTC().Hour() == s.cfg.DailyHourUTC {
				s.backfill(ctx, s.now().In(s.loc))
			}
		}
	}
}

// persist writes every stored state into the slate for its local calendar
// day, so scorer-entered progress survives a restart of the memory store.
func (s *Syncer) persist(ctx context.Context) {
	if s.source == nil {
		return
	}
	start := time.Now()
	states, err := s.source.List(ctx)
	if err != nil {
		s.logWarn("snapshot persist list failed", "err", err)
		return
	}

	slates := s.groupByDate(states)
	dates := make([]string, 0, len(slates))
	for date := range slates {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		if err := s.writer.WriteSlate(date, slates[date]); err != nil {
			s.logWarn("snapshot write failed", "date", date, "err", err)
		}
	}
	s.logInfo("store snapshot persisted",
		"dates", len(dates),
		"count", len(states),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (s *Syncer) groupByDate(states []domaingames.GameState) map[string][]domaingames.GameState {
	slates := make(map[string][]domaingames.GameState)
	for _, state := range states {
		if state.StartTime.IsZero() {
			continue
		}
		date := timeutil.FormatDate(state.StartTime.In(s.loc))
		slates[date] = append(slates[date], state)
	}
	return slates
}

func (s *Syncer) backfill(ctx context.Context, now time.Time) {
	if s.provider == nil || s.source == nil {
		return
	}
	dates := s.buildDates(now)
	for i, date := range dates {
		select {
		case <-ctx.Done():
			return
		default:
		}
		s.fetchAndSeed(ctx, date)
		if i < len(dates)-1 {
			s.sleep(ctx, s.cfg.Interval)
		}
	}
}

func (s *Syncer) buildDates(now time.Time) []string {
	var dates []string
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	// Today and yesterday always refresh to catch late schedule changes
	// and makeup games.
	dates = append(dates, today, yesterday)

	// Past window beyond yesterday: only fetch if missing (e.g., startup or outage).
	for i := 2; i < s.cfg.Days; i++ {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		if !s.hasSnapshot(kindGames, date) {
			dates = append(dates, date)
		}
	}

	// Future window: prefetch missing only.
	for i := 1; i <= s.cfg.FutureDays; i++ {
		date := now.AddDate(0, 0, i).Format("2006-01-02")
		if !s.hasSnapshot(kindGames, date) {
			dates = append(dates, date)
		}
	}

	return dates
}

// fetchAndSeed pulls one day's schedule and seeds the games that have not
// been created yet. Only SCHEDULED entries seed; anything already in play
// upstream has no scorer history here to attach it to.
func (s *Syncer) fetchAndSeed(ctx context.Context, date string) {
	start := time.Now()
	slate, err := s.provider.FetchSchedule(ctx, date)
	if err != nil {
		s.logWarn("snapshot sync fetch failed", "date", date, "err", err)
		return
	}
	if len(slate) == 0 {
		s.logWarn("snapshot sync received no games", "date", date)
		return
	}

	seeds := make([]domaingames.GameState, 0, len(slate))
	for _, state := range slate {
		if state.Status == domaingames.StatusScheduled {
			seeds = append(seeds, state)
		}
	}

	inserted, err := s.source.Seed(ctx, seeds)
	if err != nil {
		s.logWarn("snapshot sync seed failed", "date", date, "err", err)
		return
	}
	s.logInfo("schedule backfilled",
		"date", date,
		"count", len(slate),
		"seeded", inserted,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (s *Syncer) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (s *Syncer) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Syncer) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *Syncer) hasSnapshot(kind snapshotKind, date string) bool {
	if s == nil || s.writer == nil || s.writer.basePath == "" || date == "" {
		return false
	}
	path := s.writer.snapshotPath(kind, date)
	_, err := os.Stat(path)
	return err == nil
}
