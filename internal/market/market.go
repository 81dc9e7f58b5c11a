// Package market turns raw quote snapshots into per-line markets and
// derives best prices, fair baselines, and per-book expected value.
package market

import (
	"sort"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
	"github.com/oddsmash/oddsmash-engine/pkg/oddsmath"
)

// Build groups a quote snapshot into per-line markets, partitioned by
// side. Quotes with invalid American odds are dropped here so downstream
// stages only ever see valid prices. When a book supplies more than one
// quote for the same (line, side), the most recently observed wins; at
// equal timestamps the more favorable price wins.
//
// The returned slice is sorted ascending by line, and quotes within each
// side are sorted by sportsbook ID, so output is deterministic regardless
// of snapshot arrival order.
func Build(eventID, player, marketType string, quotes []models.Quote) []models.Market {
	type sideKey struct {
		line float64
		side models.Side
		book string
	}

	latest := make(map[sideKey]models.Quote)
	for _, q := range quotes {
		if q.AmericanOdds > -100 && q.AmericanOdds < 100 {
			continue // invalid odds, treated as no quote
		}
		key := sideKey{line: q.Line, side: q.Side, book: q.SportsbookID}
		if prev, ok := latest[key]; ok && !replaces(q, prev) {
			continue
		}
		latest[key] = q
	}

	byLine := make(map[float64]*models.Market)
	for _, q := range latest {
		m, ok := byLine[q.Line]
		if !ok {
			m = &models.Market{
				EventID:    eventID,
				Player:     player,
				MarketType: marketType,
				Line:       q.Line,
			}
			byLine[q.Line] = m
		}
		if q.Side == models.SideOver {
			m.Over = append(m.Over, q)
		} else {
			m.Under = append(m.Under, q)
		}
	}

	markets := make([]models.Market, 0, len(byLine))
	for _, m := range byLine {
		sortQuotes(m.Over)
		sortQuotes(m.Under)
		markets = append(markets, *m)
	}

	sort.Slice(markets, func(i, j int) bool {
		return markets[i].Line < markets[j].Line
	})

	return markets
}

// replaces reports whether q should displace prev for the same
// (line, side, book). Newer observations win; at equal timestamps the
// higher decimal price wins, so output never depends on arrival order.
func replaces(q, prev models.Quote) bool {
	if !q.ObservedAt.Equal(prev.ObservedAt) {
		return q.ObservedAt.After(prev.ObservedAt)
	}

	qDec, err := oddsmath.AmericanToDecimal(q.AmericanOdds)
	if err != nil {
		return false
	}
	prevDec, err := oddsmath.AmericanToDecimal(prev.AmericanOdds)
	if err != nil {
		return true
	}
	return qDec > prevDec
}

func sortQuotes(quotes []models.Quote) {
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].SportsbookID < quotes[j].SportsbookID
	})
}
