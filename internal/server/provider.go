package server

import (
	"log/slog"

	"baseball-games-service/internal/config"
	"baseball-games-service/internal/schedule"
	"baseball-games-service/internal/schedule/fixture"
	"baseball-games-service/internal/schedule/leagueapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) schedule.Provider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "leagueapi":
		return leagueapi.NewClient(leagueapi.Config{
			BaseURL:  cfg.LeagueAPI.BaseURL,
			APIKey:   cfg.LeagueAPI.APIKey,
			Timezone: cfg.LeagueAPI.Timezone,
		})
	default:
		if logger != nil {
			logger.Warn("unknown schedule provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
