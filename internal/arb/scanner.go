// Package arb detects guaranteed-profit price combinations across books
// and maintains the opportunity feed.
package arb

import (
	"time"

	"github.com/google/uuid"

	"github.com/oddsmash/oddsmash-engine/internal/market"
	"github.com/oddsmash/oddsmash-engine/pkg/models"
	"github.com/oddsmash/oddsmash-engine/pkg/oddsmath"
)

// Event carries the scheduling context an arbitrage scan needs to apply
// its time filter. StartTime is the event's nominal start.
type Event struct {
	Sport       string
	EventID     string
	Description string
	StartTime   time.Time
	IsLive      bool
}

// Scanner checks lines for arbitrage between the best over and best
// under prices, which may come from different books.
type Scanner struct {
	mode      models.ScanMode
	minArbPct float64
	now       func() time.Time
}

// NewScanner creates a scanner. minArbPct of 0 reports every opportunity.
func NewScanner(mode models.ScanMode, minArbPct float64) *Scanner {
	return &Scanner{mode: mode, minArbPct: minArbPct, now: time.Now}
}

// ScanLine examines one market line and returns an opportunity when the
// best prices jointly guarantee profit, or nil otherwise. A combined
// implied probability at or above 1.0 never produces a result.
func (s *Scanner) ScanLine(event Event, m models.Market) *models.ArbitrageOpportunity {
	if !s.eligible(event) {
		return nil
	}

	bestOver := market.BestPrice(m.Over)
	bestUnder := market.BestPrice(m.Under)
	if bestOver == nil || bestUnder == nil {
		return nil // one-sided line, nothing to pair
	}

	combined := oddsmath.CombinedImplied(bestOver.DecimalOdds, bestUnder.DecimalOdds)
	if combined >= 1.0 {
		return nil
	}

	arbPct := oddsmath.ArbPercent(combined)
	if arbPct < s.minArbPct {
		return nil
	}

	stakeOver, stakeUnder := oddsmath.StakeSplit(bestOver.DecimalOdds, bestUnder.DecimalOdds)

	return &models.ArbitrageOpportunity{
		ID:              uuid.NewString(),
		Sport:           event.Sport,
		EventID:         event.EventID,
		Description:     event.Description,
		MarketKey:       m.MarketType,
		Line:            m.Line,
		OverBook:        bestOver.SportsbookID,
		UnderBook:       bestUnder.SportsbookID,
		OverPrice:       bestOver.AmericanOdds,
		UnderPrice:      bestUnder.AmericanOdds,
		OverLink:        deepLink(m.Over, bestOver.SportsbookID),
		UnderLink:       deepLink(m.Under, bestUnder.SportsbookID),
		CombinedImplied: combined,
		ArbPercentage:   arbPct,
		StakeOver:       stakeOver,
		StakeUnder:      stakeUnder,
		StartTime:       event.StartTime,
		IsLive:          event.IsLive,
		FoundAt:         s.now(),
	}
}

// ScanMarkets runs ScanLine over every line of an event's ladder.
func (s *Scanner) ScanMarkets(event Event, markets []models.Market) []models.ArbitrageOpportunity {
	var found []models.ArbitrageOpportunity
	for _, m := range markets {
		if opp := s.ScanLine(event, m); opp != nil {
			found = append(found, *opp)
		}
	}
	return found
}

// eligible applies the mode's time filter. Pre-match excludes events
// already started; live keeps live-flagged events up to the grace window
// past their nominal start, tolerating long-running live events.
func (s *Scanner) eligible(event Event) bool {
	now := s.now()

	switch s.mode {
	case models.ModeLive:
		if !event.IsLive {
			return false
		}
		return now.Before(event.StartTime.Add(models.LiveGraceWindow))
	default:
		return event.StartTime.After(now)
	}
}

func deepLink(quotes []models.Quote, book string) *string {
	for _, q := range quotes {
		if q.SportsbookID == book {
			return q.DeepLink
		}
	}
	return nil
}
