package models

import "time"

// ScanMode selects which events an arbitrage scan considers.
type ScanMode string

const (
	// ModePreMatch keeps only events that have not started yet.
	ModePreMatch ScanMode = "pre_match"
	// ModeLive keeps only live-flagged events, tolerating starts up to
	// LiveGraceWindow in the past for long-running events.
	ModeLive ScanMode = "live"
)

// LiveGraceWindow is how long after its nominal start time a live-flagged
// event remains eligible for live scanning.
const LiveGraceWindow = 24 * time.Hour

// ArbitrageOpportunity is a pair of prices across books that guarantees
// profit regardless of outcome. ArbPercentage is strictly positive;
// combinations at or above a combined implied probability of 1.0 never
// produce an opportunity.
type ArbitrageOpportunity struct {
	ID              string    `json:"id"`
	Sport           string    `json:"sport,omitempty"`
	EventID         string    `json:"event_id,omitempty"`
	Description     string    `json:"description,omitempty"`
	MarketKey       string    `json:"market_key,omitempty"`
	Line            float64   `json:"line"`
	OverBook        string    `json:"over_book"`
	UnderBook       string    `json:"under_book"`
	OverPrice       int       `json:"over_odds"`
	UnderPrice      int       `json:"under_odds"`
	OverLink        *string   `json:"over_link,omitempty"`
	UnderLink       *string   `json:"under_link,omitempty"`
	CombinedImplied float64   `json:"combined_implied_probability"`
	ArbPercentage   float64   `json:"arb_percentage"`
	StakeOver       float64   `json:"over_stake_pct"`
	StakeUnder      float64   `json:"under_stake_pct"`
	StartTime       time.Time `json:"start_time,omitempty"`
	IsLive          bool      `json:"is_live"`
	FoundAt         time.Time `json:"found_at"`
}
