package models

import "time"

// PriceInfo is one book's quote for one side of a line, with derived values.
type PriceInfo struct {
	Price   int     `json:"price"`
	Decimal float64 `json:"decimal"`
	Implied float64 `json:"implied"`
	Link    *string `json:"link"`
}

// BookSides groups a single book's over and under prices for one line.
// Either side may be nil when the book does not quote it.
type BookSides struct {
	Over  *PriceInfo `json:"over"`
	Under *PriceInfo `json:"under"`
}

// LadderEntry is the full multi-book view of a single line.
type LadderEntry struct {
	Line           float64              `json:"line"`
	Books          map[string]BookSides `json:"books"`
	BestOver       *BestPrice           `json:"best_over"`
	BestUnder      *BestPrice           `json:"best_under"`
	AvgOverDecimal *float64             `json:"avg_over_decimal"`
	AvgUnderDec    *float64             `json:"avg_under_decimal"`
	ImpliedOver    *float64             `json:"implied_over"`
	ImpliedUnder   *float64             `json:"implied_under"`
	NoVigProbOver  *float64             `json:"no_vig_prob_over"`
	NoVigProbUnder *float64             `json:"no_vig_prob_under"`
	EVOverPct      *float64             `json:"ev_over_pct"`
	EVUnderPct     *float64             `json:"ev_under_pct"`
}

// Ladder is the ordered sequence of lines one player/market offers across
// every contributing book. Entries are sorted ascending by line and lines
// are unique within a ladder.
type Ladder struct {
	EventID           string        `json:"event_id,omitempty"`
	Player            string        `json:"player"`
	MarketType        string        `json:"market"`
	Entries           []LadderEntry `json:"lines"`
	ContributingBooks []string      `json:"contributing_books"`
	Step              *float64      `json:"step"`
	LastUpdated       time.Time     `json:"last_updated"`
}
