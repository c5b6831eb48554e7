package leagueapi

const providerName = "leagueapi"

type scheduleResponse struct {
	Data []gameResponse `json:"data"`
	Meta metaResponse   `json:"meta"`
}

type gameResponse struct {
	ID         int          `json:"id"`
	FirstPitch string       `json:"first_pitch"`
	Status     string       `json:"status"`
	HomeTeam   teamResponse `json:"home_team"`
	AwayTeam   teamResponse `json:"away_team"`
	Venue      string       `json:"venue"`
	Season     int          `json:"season"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Abbreviation string `json:"abbreviation"`
}

type metaResponse struct {
	TotalPages int `json:"total_pages"`
}
