package testutil

import (
	"context"

	domaingames "baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/schedule"
)

// GoodProvider returns the provided slate with no error.
type GoodProvider struct {
	Games []domaingames.GameState
}

func (p GoodProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.GameState, error) {
	_ = ctx
	_ = date
	return p.Games, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.GameState, error) {
	return nil, p.Err
}

// EmptyProvider returns no games, no error.
type EmptyProvider struct{}

func (EmptyProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.GameState, error) {
	return []domaingames.GameState{}, nil
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.GameState, error) {
	return nil, schedule.ErrProviderUnavailable
}
