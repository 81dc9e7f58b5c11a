// Package ladder assembles the per-line, multi-book view of one
// player/market across every line any book offers.
package ladder

import (
	"math"
	"sort"
	"time"

	"github.com/oddsmash/oddsmash-engine/internal/market"
	"github.com/oddsmash/oddsmash-engine/pkg/models"
	"github.com/oddsmash/oddsmash-engine/pkg/oddsmath"
)

// Build composes best prices, averages, no-vig fair values, and EV into
// a ladder for one player/market. The result is a pure function of the
// quote snapshot: identical snapshots produce byte-identical ladders,
// regardless of quote arrival order. LastUpdated is the most recent
// observation in the snapshot, not the wall clock, so rebuilds of the
// same snapshot stay identical.
func Build(eventID, player, marketType string, quotes []models.Quote) models.Ladder {
	markets := market.Build(eventID, player, marketType, quotes)

	entries := make([]models.LadderEntry, 0, len(markets))
	bookSet := make(map[string]struct{})

	for _, m := range markets {
		entry := buildEntry(m)
		for book := range entry.Books {
			bookSet[book] = struct{}{}
		}
		entries = append(entries, entry)
	}

	books := make([]string, 0, len(bookSet))
	for book := range bookSet {
		books = append(books, book)
	}
	sort.Strings(books)

	return models.Ladder{
		EventID:           eventID,
		Player:            player,
		MarketType:        marketType,
		Entries:           entries,
		ContributingBooks: books,
		Step:              minStep(markets),
		LastUpdated:       latestObservation(quotes),
	}
}

// latestObservation is the newest ObservedAt across the snapshot, zero
// when the snapshot is empty.
func latestObservation(quotes []models.Quote) time.Time {
	var latest time.Time
	for _, q := range quotes {
		if q.ObservedAt.After(latest) {
			latest = q.ObservedAt
		}
	}
	return latest.UTC()
}

func buildEntry(m models.Market) models.LadderEntry {
	entry := models.LadderEntry{
		Line:  m.Line,
		Books: make(map[string]models.BookSides),
	}

	for _, q := range m.Over {
		sides := entry.Books[q.SportsbookID]
		sides.Over = priceInfo(q)
		entry.Books[q.SportsbookID] = sides
	}
	for _, q := range m.Under {
		sides := entry.Books[q.SportsbookID]
		sides.Under = priceInfo(q)
		entry.Books[q.SportsbookID] = sides
	}

	entry.BestOver = market.BestPrice(m.Over)
	entry.BestUnder = market.BestPrice(m.Under)
	entry.AvgOverDecimal = market.AverageDecimal(m.Over)
	entry.AvgUnderDec = market.AverageDecimal(m.Under)

	if entry.BestOver != nil {
		if p, err := oddsmath.AmericanToImpliedProbability(entry.BestOver.AmericanOdds); err == nil {
			entry.ImpliedOver = &p
		}
	}
	if entry.BestUnder != nil {
		if p, err := oddsmath.AmericanToImpliedProbability(entry.BestUnder.AmericanOdds); err == nil {
			entry.ImpliedUnder = &p
		}
	}

	fv := market.FairValue(m)
	entry.NoVigProbOver = fv.ProbOver
	entry.NoVigProbUnder = fv.ProbUnder

	// EV of the best price on each side against the de-vigged baseline.
	// A one-sided line leaves both EVs null along with the fair values.
	if entry.BestOver != nil && fv.ProbOver != nil {
		ev := oddsmath.EVPercent(entry.BestOver.DecimalOdds, *fv.ProbOver)
		entry.EVOverPct = &ev
	}
	if entry.BestUnder != nil && fv.ProbUnder != nil {
		ev := oddsmath.EVPercent(entry.BestUnder.DecimalOdds, *fv.ProbUnder)
		entry.EVUnderPct = &ev
	}

	return entry
}

// priceInfo derives decimal and implied values for one book quote.
// Quotes that fail conversion were already dropped by market.Build.
func priceInfo(q models.Quote) *models.PriceInfo {
	decimal, err := oddsmath.AmericanToDecimal(q.AmericanOdds)
	if err != nil {
		return nil
	}
	implied, err := oddsmath.AmericanToImpliedProbability(q.AmericanOdds)
	if err != nil {
		return nil
	}

	return &models.PriceInfo{
		Price:   q.AmericanOdds,
		Decimal: decimal,
		Implied: implied,
		Link:    q.DeepLink,
	}
}

// minStep is the smallest positive gap between consecutive lines,
// ignoring non-positive or non-finite deltas. Markets arrive sorted
// ascending by line from market.Build.
func minStep(markets []models.Market) *float64 {
	var step *float64

	for i := 1; i < len(markets); i++ {
		d := math.Round((markets[i].Line-markets[i-1].Line)*1000) / 1000
		if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		if step == nil || d < *step {
			v := d
			step = &v
		}
	}

	return step
}
