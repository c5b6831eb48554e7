package snapshots

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	domaingames "baseball-games-service/internal/domain/games"
)

func scheduledState(id string, start time.Time) domaingames.GameState {
	state := domaingames.NewScheduledGame(id, "Harbor Cats", "River Hawks", start)
	state.UpdatedAt = start.Add(-6 * time.Hour)
	return state
}

func simpleSlate(date string) []domaingames.GameState {
	day, _ := time.Parse("2006-01-02", date)
	return []domaingames.GameState{
		scheduledState(date, day.Add(19*time.Hour)),
	}
}

func writeSlate(t *testing.T, w *Writer, date string, states []domaingames.GameState) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteSlate(date, states); err != nil {
		t.Fatalf("failed to write slate %s: %v", date, err)
	}
}

func writeSimpleSlate(t *testing.T, w *Writer, date string) {
	t.Helper()
	writeSlate(t, w, date, simpleSlate(date))
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil when asserting snapshot for %s", date)
	}
	path := filepath.Join(w.BasePath(), "games", date+".json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

// fakeSource is a GameSource backed by a fixed slice.
type fakeSource struct {
	mu        sync.Mutex
	states    []domaingames.GameState
	listErr   error
	seedErr   error
	seeds     []domaingames.GameState
	seedCalls int
}

func newFakeSource(states ...domaingames.GameState) *fakeSource {
	return &fakeSource{states: states}
}

func (f *fakeSource) List(ctx context.Context) ([]domaingames.GameState, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domaingames.GameState(nil), f.states...), nil
}

func (f *fakeSource) Seed(ctx context.Context, seeds []domaingames.GameState) (int, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seedCalls++
	if f.seedErr != nil {
		return 0, f.seedErr
	}
	f.seeds = append(f.seeds, seeds...)
	return len(seeds), nil
}

func (f *fakeSource) seeded() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seeds)
}

// testLogger returns a stdout slog logger.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
