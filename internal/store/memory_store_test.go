package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"baseball-games-service/internal/domain/games"
)

func testState(id string) games.GameState {
	s := games.NewScheduledGame(id, "Harbor Cats", "River Hawks",
		time.Date(2026, 4, 7, 19, 5, 0, 0, time.UTC))
	s.UpdatedAt = time.Date(2026, 4, 7, 12, 0, 0, 0, time.UTC)
	return s
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.CreateGame(ctx, testState("g1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "g1" || got.Status != games.StatusScheduled {
		t.Fatalf("unexpected state %+v", got)
	}
}

func TestMemoryStoreCreateDuplicate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.CreateGame(ctx, testState("g1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CreateGame(ctx, testState("g1")); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.GetGame(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreSaveChecksUpdatedAt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	state := testState("g1")

	if err := s.CreateGame(ctx, state); err != nil {
		t.Fatalf("create: %v", err)
	}

	next := state.Clone()
	next.Status = games.StatusInProgress
	next.UpdatedAt = state.UpdatedAt.Add(time.Second)
	if err := s.SaveGame(ctx, next, state.UpdatedAt); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A writer still holding the old UpdatedAt loses the race.
	stale := state.Clone()
	stale.Status = games.StatusCancelled
	if err := s.SaveGame(ctx, stale, state.UpdatedAt); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, err := s.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != games.StatusInProgress {
		t.Fatalf("expected the losing write discarded, got %s", got.Status)
	}
}

func TestMemoryStoreSaveUnknownID(t *testing.T) {
	s := NewMemoryStore()
	if err := s.SaveGame(context.Background(), testState("ghost"), time.Time{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreListSorted(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"g3", "g1", "g2"} {
		if err := s.CreateGame(ctx, testState(id)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	list, err := s.ListGames(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 games, got %d", len(list))
	}
	for i, want := range []string{"g1", "g2", "g3"} {
		if list[i].ID != want {
			t.Fatalf("position %d: expected %s got %s", i, want, list[i].ID)
		}
	}
}

func TestMemoryStoreCopiesOnReadAndWrite(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	state := testState("g1")
	state.AwayInningScores = []int{1}
	state.AwayScore = 1

	if err := s.CreateGame(ctx, state); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating the caller's copy after create must not reach the store.
	state.AwayInningScores[0] = 9

	got, err := s.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AwayInningScores[0] != 1 {
		t.Fatalf("expected stored line isolated, got %v", got.AwayInningScores)
	}

	// Mutating a read result must not reach the store either.
	got.AwayInningScores[0] = 7
	again, _ := s.GetGame(ctx, "g1")
	if again.AwayInningScores[0] != 1 {
		t.Fatalf("expected reads to return copies, got %v", again.AwayInningScores)
	}
}

func TestMemoryStoreSetGamesReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.CreateGame(ctx, testState("old")); err != nil {
		t.Fatalf("create: %v", err)
	}
	s.SetGames([]games.GameState{testState("new")})

	if _, err := s.GetGame(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected old game removed after replace, got %v", err)
	}
	if _, err := s.GetGame(ctx, "new"); err != nil {
		t.Fatalf("expected new game present, got %v", err)
	}
}

func TestMemoryStoreHonorsContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.GetGame(ctx, "g1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if err := s.CreateGame(ctx, testState("g1")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
