package leagueapi

import (
	"fmt"
	"strings"
	"time"

	"baseball-games-service/internal/domain/games"
)

func mapGame(g gameResponse, loc *time.Location) games.GameState {
	state := games.NewScheduledGame(
		fmt.Sprintf("%s-%d", providerName, g.ID),
		teamName(g.HomeTeam),
		teamName(g.AwayTeam),
		parseFirstPitch(g.FirstPitch, loc),
	)
	state.Status = mapStatus(g.Status)
	return state
}

func teamName(t teamResponse) string {
	city := strings.TrimSpace(t.City)
	name := strings.TrimSpace(t.Name)
	if city != "" && name != "" {
		return city + " " + name
	}
	if name != "" {
		return name
	}
	if city != "" {
		return city
	}
	return strings.TrimSpace(t.Abbreviation)
}

// parseFirstPitch accepts either a full timestamp or a bare date. A bare
// date is pinned to noon local time so the stored instant still lands on
// the right calendar day everywhere the league plays.
func parseFirstPitch(value string, loc *time.Location) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	if day, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return day.Add(12 * time.Hour)
	}
	return time.Time{}
}

func mapStatus(status string) games.GameStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "final", "completed", "game over":
		return games.StatusFinal
	case "in progress", "live":
		return games.StatusInProgress
	case "warmup", "pre-game":
		return games.StatusWarmup
	case "suspended":
		return games.StatusSuspended
	case "postponed":
		return games.StatusPostponed
	case "cancelled", "canceled":
		return games.StatusCancelled
	default:
		return games.StatusScheduled
	}
}
