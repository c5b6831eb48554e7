package config

// LeagueAPIConfig controls how we talk to the upstream league schedule API.
type LeagueAPIConfig struct {
	BaseURL  string `env:"LEAGUE_API_BASE_URL" envDefault:"https://api.baseballdata.io/v1"`
	APIKey   string `env:"LEAGUE_API_KEY"`
	Timezone string `env:"LEAGUE_TIMEZONE" envDefault:"America/New_York"`
}
