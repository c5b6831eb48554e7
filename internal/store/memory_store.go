package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"baseball-games-service/internal/domain/games"
)

// Sentinel errors shared by every store implementation.
var (
	ErrNotFound      = errors.New("game not found")
	ErrAlreadyExists = errors.New("game already exists")
	ErrConflict      = errors.New("game state changed concurrently")
)

// MemoryStore keeps game states in memory behind a single lock. Saves
// follow the same compare-and-swap contract as the durable store, so
// concurrent actions against one game id serialize here too: the slower
// writer loses with ErrConflict instead of clobbering the faster one.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]games.GameState
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]games.GameState),
	}
}

// GetGame retrieves a game state by id.
func (s *MemoryStore) GetGame(ctx context.Context, id string) (games.GameState, error) {
	if err := ctx.Err(); err != nil {
		return games.GameState{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.games[id]
	if !ok {
		return games.GameState{}, ErrNotFound
	}
	return state.Clone(), nil
}

// CreateGame inserts a new game. ErrAlreadyExists reports a taken id.
func (s *MemoryStore) CreateGame(ctx context.Context, state games.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[state.ID]; ok {
		return ErrAlreadyExists
	}
	s.games[state.ID] = state.Clone()
	return nil
}

// SaveGame replaces a game's state when the stored UpdatedAt still equals
// expect. ErrConflict reports a lost race, ErrNotFound an unknown id.
func (s *MemoryStore) SaveGame(ctx context.Context, state games.GameState, expect time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.games[state.ID]
	if !ok {
		return ErrNotFound
	}
	if !current.UpdatedAt.Equal(expect) {
		return ErrConflict
	}
	s.games[state.ID] = state.Clone()
	return nil
}

// ListGames returns copies of the stored states sorted by id.
func (s *MemoryStore) ListGames(ctx context.Context) ([]games.GameState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.GameState, 0, len(s.games))
	for _, state := range s.games {
		result = append(result, state.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// SetGames replaces the existing games with a new snapshot, used when
// rehydrating from disk.
func (s *MemoryStore) SetGames(states []games.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]games.GameState, len(states))
	for _, state := range states {
		s.games[state.ID] = state.Clone()
	}
}
