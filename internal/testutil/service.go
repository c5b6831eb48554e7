package testutil

import (
	"baseball-games-service/internal/app/games"
	domaingames "baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/store"
)

// NewServiceWithGames builds a games service backed by an in-memory store
// preloaded with the given states.
func NewServiceWithGames(states []domaingames.GameState) *games.Service {
	ms := store.NewMemoryStore()
	if len(states) > 0 {
		ms.SetGames(states)
	}
	return games.NewService(ms, nil, nil, nil)
}
