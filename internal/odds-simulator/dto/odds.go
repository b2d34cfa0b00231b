package dto

// Formato das respostas do provedor de odds (/v4/sports e /v4/sports/{sport}/odds)

type Sport struct {
	Key          string `json:"key"`
	Group        string `json:"group"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
	HasOutrights bool   `json:"has_outrights"`
}

type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"` // odd decimal
}

type Market struct {
	Key        string    `json:"key"` // "h2h"
	LastUpdate string    `json:"last_update"`
	Outcomes   []Outcome `json:"outcomes"`
}

type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update"`
	Markets    []Market `json:"markets"`
}

type Game struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// ErrorResp imita o corpo de erro do provedor
type ErrorResp struct {
	Message    string `json:"message"`
	ErrorCode  string `json:"error_code"`
	DetailsURL string `json:"details_url,omitempty"`
}

const (
	ErrorCodeUnknownSport  = "UNKNOWN_SPORT"
	ErrorCodeMissingAPIKey = "MISSING_KEY"
	ErrorCodeInvalidAPIKey = "INVALID_KEY"
)
