package market

import (
	"fmt"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
	"github.com/oddsmash/oddsmash-engine/pkg/oddsmath"
)

// Baseline policy: the fair probability for a side comes from the
// de-vigged two-sided best prices whenever both sides are liquid, and
// from the side's average decimal odds otherwise. When evaluating a
// specific book, that book's own quotes are excluded from the baseline
// so the price being judged cannot influence its own benchmark; with
// fewer than two other books the all-books baseline is used instead and
// the result is flagged low-confidence.

// Evaluate computes the expected value of one book's quote against the
// market's fair baseline.
func Evaluate(m models.Market, q models.Quote) (*models.EVResult, error) {
	decimal, err := oddsmath.AmericanToDecimal(q.AmericanOdds)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidOdds, err)
	}

	fair, lowConfidence, err := fairForSide(m, q.Side, q.SportsbookID)
	if err != nil {
		return nil, err
	}

	return &models.EVResult{
		SportsbookID:    q.SportsbookID,
		Side:            q.Side,
		AmericanOdds:    q.AmericanOdds,
		DecimalOdds:     decimal,
		FairProbability: fair,
		EVPercentage:    oddsmath.EVPercent(decimal, fair),
		LowConfidence:   lowConfidence,
	}, nil
}

// EvaluateAll runs Evaluate for every quote in the market, dropping
// quotes whose baseline cannot be built rather than failing the batch.
func EvaluateAll(m models.Market) []models.EVResult {
	results := make([]models.EVResult, 0, len(m.Over)+len(m.Under))

	for _, q := range append(append([]models.Quote{}, m.Over...), m.Under...) {
		res, err := Evaluate(m, q)
		if err != nil {
			continue
		}
		results = append(results, *res)
	}

	return results
}

// fairForSide builds the fair-probability baseline for one side,
// excluding the named book's quotes when enough other books exist.
func fairForSide(m models.Market, side models.Side, excludeBook string) (float64, bool, error) {
	others := models.Market{
		Line:  m.Line,
		Over:  withoutBook(m.Over, excludeBook),
		Under: withoutBook(m.Under, excludeBook),
	}

	if countBooks(others) >= 2 {
		if fair, ok := baseline(others, side); ok {
			return fair, false, nil
		}
	}

	// Not enough independent books for an excluded-self baseline; fall
	// back to all books and flag the result as lower-confidence. Still
	// returned, never suppressed.
	if fair, ok := baseline(m, side); ok {
		return fair, true, nil
	}

	return 0, false, models.ErrInsufficientBooks
}

// baseline returns the fair probability for a side: no-vig from both
// sides' best prices when possible, average-decimal implied otherwise.
func baseline(m models.Market, side models.Side) (float64, bool) {
	fv := FairValue(m)
	if fv.ProbOver != nil && fv.ProbUnder != nil {
		if side == models.SideOver {
			return *fv.ProbOver, true
		}
		return *fv.ProbUnder, true
	}

	avg := AverageDecimal(m.SideQuotes(side))
	if avg == nil || *avg <= 1.0 {
		return 0, false
	}

	return 1.0 / *avg, true
}

func countBooks(m models.Market) int {
	books := make(map[string]struct{})
	for _, q := range m.Over {
		books[q.SportsbookID] = struct{}{}
	}
	for _, q := range m.Under {
		books[q.SportsbookID] = struct{}{}
	}
	return len(books)
}

func withoutBook(quotes []models.Quote, book string) []models.Quote {
	out := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.SportsbookID == book {
			continue
		}
		out = append(out, q)
	}
	return out
}
