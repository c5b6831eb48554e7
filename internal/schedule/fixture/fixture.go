// Package fixture provides a deterministic schedule slate for local runs
// and bootstrapping.
package fixture

import (
	"context"
	"fmt"
	"time"

	"baseball-games-service/internal/domain/games"
)

// Provider returns a static slate of games useful for local testing.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchSchedule returns a deterministic pair of scheduled games for the
// requested date. Ids are date-scoped so a daily sweep keeps seeding
// fresh games.
func (p *Provider) FetchSchedule(ctx context.Context, date string) ([]games.GameState, error) {
	_ = ctx

	day := p.now().UTC().Truncate(24 * time.Hour)
	if date != "" {
		if parsed, err := time.Parse("2006-01-02", date); err == nil {
			day = parsed.UTC()
		}
	}

	slate := []games.GameState{
		games.NewScheduledGame(
			fixtureID(day, 1),
			"Harbor Cats", "River Hawks",
			day.Add(18*time.Hour+5*time.Minute),
		),
		games.NewScheduledGame(
			fixtureID(day, 2),
			"Bay Sharks", "Summit Elks",
			day.Add(19*time.Hour+35*time.Minute),
		),
	}

	return slate, nil
}

func fixtureID(day time.Time, n int) string {
	return fmt.Sprintf("fixture-%s-%d", day.Format("2006-01-02"), n)
}
