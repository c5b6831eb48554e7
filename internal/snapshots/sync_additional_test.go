package snapshots

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	domaingames "baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/schedule"
)

type errProvider struct{ err error }

func (p errProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.GameState, error) {
	return nil, p.err
}

type emptyProvider struct{}

func (emptyProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.GameState, error) {
	return []domaingames.GameState{}, nil
}

type goodProvider struct{ games []domaingames.GameState }

func (p goodProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.GameState, error) {
	return p.games, nil
}

func TestSyncerNormalizesConfig(t *testing.T) {
	s := NewSyncer(nil, nil, nil, SyncConfig{
		Days:         0,
		FutureDays:   -1,
		Interval:     0,
		DailyHourUTC: -5,
	}, nil, nil)

	if s.cfg.Days != 7 {
		t.Fatalf("expected default days 7, got %d", s.cfg.Days)
	}
	if s.cfg.FutureDays != 0 {
		t.Fatalf("expected future days clamped to 0, got %d", s.cfg.FutureDays)
	}
	if s.cfg.Interval <= 0 {
		t.Fatalf("expected interval defaulted, got %s", s.cfg.Interval)
	}
	if s.cfg.DailyHourUTC != 2 {
		t.Fatalf("expected daily hour defaulted to 2, got %d", s.cfg.DailyHourUTC)
	}
	if s.loc != time.UTC {
		t.Fatalf("expected UTC calendar fallback, got %v", s.loc)
	}
}

func TestFetchAndSeedHandlesErrorsAndSuccess(t *testing.T) {
	dir := t.TempDir()
	logger := testLogger()
	live := scheduledState("leagueapi-1", time.Date(2026, 4, 7, 23, 5, 0, 0, time.UTC))

	// Provider error -> logWarn path, no panic.
	s := NewSyncer(errProvider{err: schedule.ErrProviderUnavailable}, newFakeSource(), NewWriter(dir, 7), SyncConfig{Enabled: true}, logger, nil)
	s.fetchAndSeed(context.Background(), "2026-04-01")

	// Empty slate -> logWarn path, no seed call.
	source := newFakeSource()
	s = NewSyncer(emptyProvider{}, source, NewWriter(dir, 7), SyncConfig{Enabled: true}, logger, nil)
	s.fetchAndSeed(context.Background(), "2026-04-02")
	if source.seedCalls != 0 {
		t.Fatalf("expected no seed call for empty slate, got %d", source.seedCalls)
	}

	// Seed failure -> logWarn path.
	source = newFakeSource()
	source.seedErr = errors.New("store down")
	s = NewSyncer(goodProvider{games: []domaingames.GameState{live}}, source, NewWriter(dir, 7), SyncConfig{Enabled: true}, logger, nil)
	s.fetchAndSeed(context.Background(), "2026-04-03")

	// Successful seed path.
	source = newFakeSource()
	s = NewSyncer(goodProvider{games: []domaingames.GameState{live}}, source, NewWriter(dir, 7), SyncConfig{Enabled: true}, logger, nil)
	s.fetchAndSeed(context.Background(), "2026-04-04")
	if got := source.seeded(); got != 1 {
		t.Fatalf("expected 1 seed, got %d", got)
	}
}

func TestFetchAndSeedFiltersNonScheduled(t *testing.T) {
	inPlay := scheduledState("leagueapi-2", time.Date(2026, 4, 7, 23, 5, 0, 0, time.UTC))
	inPlay.Status = domaingames.StatusInProgress
	upcoming := scheduledState("leagueapi-3", time.Date(2026, 4, 7, 23, 5, 0, 0, time.UTC))

	source := newFakeSource()
	s := NewSyncer(goodProvider{games: []domaingames.GameState{inPlay, upcoming}}, source, NewWriter(t.TempDir(), 7), SyncConfig{Enabled: true}, testLogger(), nil)
	s.fetchAndSeed(context.Background(), "2026-04-07")

	if got := source.seeded(); got != 1 {
		t.Fatalf("expected only the scheduled game to seed, got %d", got)
	}
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.seeds[0].ID != "leagueapi-3" {
		t.Fatalf("expected scheduled game seeded, got %s", source.seeds[0].ID)
	}
}

func TestPersistGroupsByLocalDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 2026-04-08T02:00Z is still 2026-04-07 in New York.
	lateGame := scheduledState("late", time.Date(2026, 4, 8, 2, 0, 0, 0, time.UTC))
	dayGame := scheduledState("day", time.Date(2026, 4, 8, 17, 0, 0, 0, time.UTC))
	noStart := scheduledState("no-start", time.Time{})

	writer := NewWriter(t.TempDir(), 10000)
	source := newFakeSource(lateGame, dayGame, noStart)
	s := NewSyncer(nil, source, writer, SyncConfig{Enabled: true}, testLogger(), loc)

	s.persist(context.Background())

	requireSnapshotExists(t, writer, "2026-04-07")
	requireSnapshotExists(t, writer, "2026-04-08")
	if _, err := os.Stat(filepath.Join(writer.BasePath(), "games", "0001-01-01.json")); err == nil {
		t.Fatalf("expected zero start time to be skipped")
	}
}

func TestPersistHandlesListError(t *testing.T) {
	source := newFakeSource()
	source.listErr = errors.New("store down")
	s := NewSyncer(nil, source, NewWriter(t.TempDir(), 7), SyncConfig{Enabled: true}, testLogger(), nil)
	s.persist(context.Background()) // logWarn path, no panic
}

func TestRunSkipsWhenDisabled(t *testing.T) {
	prov := goodProvider{games: simpleSlate("2026-04-07")}
	writer := NewWriter(t.TempDir(), 7)
	s := NewSyncer(prov, newFakeSource(), writer, SyncConfig{Enabled: false}, testLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Run(ctx) // should return immediately without panic
}

func TestBackfillRespectsContextCancel(t *testing.T) {
	prov := goodProvider{games: simpleSlate("2026-04-07")}
	writer := NewWriter(t.TempDir(), 7)
	s := NewSyncer(prov, newFakeSource(), writer, SyncConfig{Enabled: true, Interval: time.Second}, testLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.backfill(ctx, time.Now().UTC()) // should exit quickly without seeding
}
