package models

import "time"

// Window is a recency window for hit-rate statistics.
type Window string

const (
	WindowLast5  Window = "last_5"
	WindowLast10 Window = "last_10"
	WindowLast20 Window = "last_20"
	WindowSeason Window = "season"
)

// Size returns the number of games a window covers; 0 means "all available".
func (w Window) Size() int {
	switch w {
	case WindowLast5:
		return 5
	case WindowLast10:
		return 10
	case WindowLast20:
		return 20
	default:
		return 0
	}
}

// GameStat is one historical game entry for a player's tracked stat.
type GameStat struct {
	GameDate  time.Time `json:"game_date"`
	StatValue float64   `json:"stat_value"`
}

// HitRateProfile is the long-lived per-player history for one market,
// produced and cached by an external collaborator. The engine only reads
// it; recomputation for a requested line yields a derived copy and never
// mutates the stored profile.
//
// RecentGames is ordered most-recent-first. Histogram maps each window to
// a stat-value → game-count histogram precomputed for the standard line.
type HitRateProfile struct {
	PlayerID         int64                  `json:"player_id"`
	PlayerName       string                 `json:"player_name"`
	TeamAbbreviation string                 `json:"team_abbreviation,omitempty"`
	Market           string                 `json:"market"`
	Line             float64                `json:"line"`
	RecentGames      []GameStat             `json:"recent_games"`
	Histogram        map[Window]map[int]int `json:"points_histogram"`
	SeasonHitRate    *float64               `json:"season_hit_rate"`
	SeasonGamesCount int                    `json:"season_games_count"`
	AvgStatPerGame   float64                `json:"avg_stat_per_game"`
	Last5HitRate     float64                `json:"last_5_hit_rate"`
	Last10HitRate    float64                `json:"last_10_hit_rate"`
	Last20HitRate    float64                `json:"last_20_hit_rate"`
	OddsEventID      string                 `json:"odds_event_id,omitempty"`
	CommenceTime     *time.Time             `json:"commence_time,omitempty"`
}

// HitRateResult is the recomputed hit rate for one window at one line.
// A window with no games reports zero rates, not an error.
type HitRateResult struct {
	Window          Window  `json:"window"`
	HitRatePct      int     `json:"hit_rate_pct"`
	TotalGames      int     `json:"total_games"`
	SuccessfulCount int     `json:"successful_count"`
	AvgStatPerGame  float64 `json:"avg_stat_per_game"`
	IsAlternateLine bool    `json:"is_alternate_line"`
}
