package market

import (
	"github.com/oddsmash/oddsmash-engine/pkg/models"
	"github.com/oddsmash/oddsmash-engine/pkg/oddsmath"
)

// BestPrice scans all quotes for one side and returns the single most
// favorable price (highest decimal odds). Ties break toward the
// lexicographically smaller sportsbook ID so identical snapshots always
// produce identical output. Returns nil when no valid quotes exist.
func BestPrice(quotes []models.Quote) *models.BestPrice {
	var best *models.BestPrice

	for _, q := range quotes {
		decimal, err := oddsmath.AmericanToDecimal(q.AmericanOdds)
		if err != nil {
			continue // dropped silently, never a request failure
		}

		switch {
		case best == nil, decimal > best.DecimalOdds:
			best = &models.BestPrice{
				SportsbookID: q.SportsbookID,
				AmericanOdds: q.AmericanOdds,
				DecimalOdds:  decimal,
			}
		case decimal == best.DecimalOdds && q.SportsbookID < best.SportsbookID:
			best = &models.BestPrice{
				SportsbookID: q.SportsbookID,
				AmericanOdds: q.AmericanOdds,
				DecimalOdds:  decimal,
			}
		}
	}

	return best
}

// AverageDecimal is the mean decimal odds across all valid quotes for a
// side. It serves as the fair-value baseline when a two-sided no-vig
// baseline cannot be computed (e.g. props with only one liquid side).
// Returns nil when no valid quotes exist.
func AverageDecimal(quotes []models.Quote) *float64 {
	sum := 0.0
	count := 0

	for _, q := range quotes {
		decimal, err := oddsmath.AmericanToDecimal(q.AmericanOdds)
		if err != nil {
			continue
		}
		sum += decimal
		count++
	}

	if count == 0 {
		return nil
	}

	avg := sum / float64(count)
	return &avg
}

// FairValue derives de-vigged probabilities from the best prices on each
// side of a market. Both probabilities are nil when either side has no
// valid quote; a one-sided market never produces fair values.
func FairValue(m models.Market) models.FairValue {
	bestOver := BestPrice(m.Over)
	bestUnder := BestPrice(m.Under)

	if bestOver == nil || bestUnder == nil {
		return models.FairValue{}
	}

	pOver, pUnder, err := oddsmath.NoVig(bestOver.DecimalOdds, bestUnder.DecimalOdds)
	if err != nil {
		return models.FairValue{}
	}

	return models.FairValue{ProbOver: &pOver, ProbUnder: &pUnder}
}
