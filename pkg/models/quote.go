package models

import "time"

// Side identifies which half of a two-sided market a quote prices.
type Side string

const (
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// Opposite returns the other side of a two-sided market.
func (s Side) Opposite() Side {
	if s == SideOver {
		return SideUnder
	}
	return SideOver
}

// Quote is a single sportsbook price for one side of one line,
// as returned by the quote provider. Quotes are ephemeral: a fresh
// snapshot is supplied per request and nothing here is persisted.
type Quote struct {
	SportsbookID string    `json:"sportsbook_id"`
	Side         Side      `json:"side"`
	AmericanOdds int       `json:"american_odds"`
	Line         float64   `json:"line"`
	ObservedAt   time.Time `json:"observed_at"`
	DeepLink     *string   `json:"deep_link,omitempty"`
}

// Market is the set of quotes for one (event, player, market type, line),
// partitioned by side. At most one quote per (sportsbook, side) is kept;
// when the provider hands us duplicates, the most recently observed wins.
type Market struct {
	EventID    string  `json:"event_id"`
	Player     string  `json:"player"`
	MarketType string  `json:"market_type"`
	Line       float64 `json:"line"`
	Over       []Quote `json:"over"`
	Under      []Quote `json:"under"`
}

// SideQuotes returns the quotes for the requested side.
func (m Market) SideQuotes(side Side) []Quote {
	if side == SideOver {
		return m.Over
	}
	return m.Under
}

// BestPrice is the single most favorable quote for one side of a line.
type BestPrice struct {
	SportsbookID string  `json:"book"`
	AmericanOdds int     `json:"price"`
	DecimalOdds  float64 `json:"decimal"`
}

// FairValue holds de-vigged probabilities for a two-sided market.
// Both fields are nil whenever either side lacks a valid quote.
type FairValue struct {
	ProbOver  *float64 `json:"probability_over"`
	ProbUnder *float64 `json:"probability_under"`
}

// EVResult is the expected value of one book's price against a fair
// probability baseline. LowConfidence marks results whose baseline had
// to include the evaluated book's own quote for lack of other books.
type EVResult struct {
	SportsbookID    string  `json:"sportsbook_id"`
	Side            Side    `json:"side"`
	AmericanOdds    int     `json:"american_odds"`
	DecimalOdds     float64 `json:"decimal_odds"`
	FairProbability float64 `json:"fair_probability"`
	EVPercentage    float64 `json:"ev_percentage"`
	LowConfidence   bool    `json:"low_confidence,omitempty"`
}
