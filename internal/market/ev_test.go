package market

import (
	"math"
	"testing"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

func TestEvaluateExcludesOwnBook(t *testing.T) {
	// Three books: the baseline for fanduel's quote must come from the
	// other two only, so its own outlier price cannot flatter itself.
	m := models.Market{
		Line: 8.5,
		Over: []models.Quote{
			quote("draftkings", models.SideOver, -110, 8.5),
			quote("betmgm", models.SideOver, -110, 8.5),
			quote("fanduel", models.SideOver, 150, 8.5),
		},
		Under: []models.Quote{
			quote("draftkings", models.SideUnder, -110, 8.5),
			quote("betmgm", models.SideUnder, -110, 8.5),
		},
	}

	res, err := Evaluate(m, m.Over[2])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LowConfidence {
		t.Error("two other books exist; result should not be low confidence")
	}

	// Others de-vig to 0.5/0.5; +150 at fair 0.5 is a 25% edge.
	if math.Abs(res.FairProbability-0.5) > 0.001 {
		t.Errorf("fair probability = %f, want 0.5", res.FairProbability)
	}
	if math.Abs(res.EVPercentage-25.0) > 0.01 {
		t.Errorf("EV = %f, want 25.0", res.EVPercentage)
	}
}

func TestEvaluateZeroEVAtFairPrice(t *testing.T) {
	m := models.Market{
		Line: 8.5,
		Over: []models.Quote{
			quote("draftkings", models.SideOver, 100, 8.5),
			quote("betmgm", models.SideOver, 100, 8.5),
			quote("fanduel", models.SideOver, 100, 8.5),
		},
		Under: []models.Quote{
			quote("draftkings", models.SideUnder, 100, 8.5),
			quote("betmgm", models.SideUnder, 100, 8.5),
			quote("fanduel", models.SideUnder, 100, 8.5),
		},
	}

	res, err := Evaluate(m, m.Over[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.EVPercentage) > 0.0001 {
		t.Errorf("price equals fair line, EV = %f, want 0", res.EVPercentage)
	}
}

func TestEvaluateLowConfidenceFallback(t *testing.T) {
	// Only one other book: not enough for an excluded-self baseline, so
	// the all-books baseline is used and the result flagged.
	m := models.Market{
		Line: 8.5,
		Over: []models.Quote{
			quote("draftkings", models.SideOver, -110, 8.5),
			quote("fanduel", models.SideOver, 120, 8.5),
		},
		Under: []models.Quote{
			quote("draftkings", models.SideUnder, -110, 8.5),
		},
	}

	res, err := Evaluate(m, m.Over[1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.LowConfidence {
		t.Error("expected low-confidence flag with only one other book")
	}
	if res.EVPercentage == 0 {
		t.Error("low-confidence EV should still be computed, got exactly 0")
	}
}

func TestEvaluateAllSkipsBrokenQuotes(t *testing.T) {
	m := models.Market{
		Line: 8.5,
		Over: []models.Quote{
			quote("draftkings", models.SideOver, -110, 8.5),
			quote("betmgm", models.SideOver, -105, 8.5),
			quote("fanduel", models.SideOver, 100, 8.5),
		},
		Under: []models.Quote{
			quote("draftkings", models.SideUnder, -110, 8.5),
			quote("betmgm", models.SideUnder, -115, 8.5),
		},
	}

	results := EvaluateAll(m)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for _, r := range results {
		if r.DecimalOdds <= 1.0 {
			t.Errorf("book %s has invalid decimal odds %f", r.SportsbookID, r.DecimalOdds)
		}
	}
}
