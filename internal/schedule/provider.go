// Package schedule fetches upstream game schedules and normalizes them
// into store-ready game states.
package schedule

import (
	"context"

	"baseball-games-service/internal/domain/games"
)

// Provider defines how upstream schedule data is fetched and normalized.
// The date parameter, when provided, should be a YYYY-MM-DD string indicating
// which day's slate to fetch. Providers interpret an empty date as "today"
// in their configured timezone.
type Provider interface {
	FetchSchedule(ctx context.Context, date string) ([]games.GameState, error)
}
