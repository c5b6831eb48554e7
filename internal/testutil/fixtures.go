package testutil

import (
	"time"

	domaingames "baseball-games-service/internal/domain/games"
)

// SampleGame returns a scheduled game fixture with the provided id.
func SampleGame(id string) domaingames.GameState {
	return domaingames.NewScheduledGame(
		id,
		"Harbor Cats",
		"River Hawks",
		time.Date(2026, 4, 7, 23, 5, 0, 0, time.UTC),
	)
}

// SampleLiveGame returns an in-progress game fixture mid-way through the
// third inning, useful for exercising score/out/advance paths.
func SampleLiveGame(id string) domaingames.GameState {
	g := SampleGame(id)
	g.Status = domaingames.StatusInProgress
	g.CurrentInning = 3
	g.CurrentHalf = domaingames.HalfBottom
	g.Outs = 1
	g.HomeInningScores = []int{0, 2, 0}
	g.AwayInningScores = []int{1, 0, 0}
	g.HomeScore = 2
	g.AwayScore = 1
	started := g.StartTime
	g.StartedAt = &started
	g.UpdatedAt = g.StartTime.Add(45 * time.Minute)
	return g
}

// SampleSlate builds a one-game slate for the date.
func SampleSlate(date string, id string) []domaingames.GameState {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		day = time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	}
	g := SampleGame(id)
	g.StartTime = day.Add(19 * time.Hour)
	return []domaingames.GameState{g}
}
