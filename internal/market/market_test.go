package market

import (
	"testing"
	"time"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

func quote(book string, side models.Side, price int, line float64) models.Quote {
	return models.Quote{
		SportsbookID: book,
		Side:         side,
		AmericanOdds: price,
		Line:         line,
		ObservedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildGroupsByLine(t *testing.T) {
	quotes := []models.Quote{
		quote("draftkings", models.SideOver, -110, 8.5),
		quote("draftkings", models.SideUnder, -110, 8.5),
		quote("fanduel", models.SideOver, 105, 9.5),
		quote("fanduel", models.SideUnder, -125, 9.5),
	}

	markets := Build("evt1", "judge", "home_runs", quotes)

	if len(markets) != 2 {
		t.Fatalf("expected 2 markets, got %d", len(markets))
	}
	if markets[0].Line != 8.5 || markets[1].Line != 9.5 {
		t.Errorf("lines not sorted ascending: %f, %f", markets[0].Line, markets[1].Line)
	}
	if len(markets[0].Over) != 1 || len(markets[0].Under) != 1 {
		t.Errorf("line 8.5 sides mispartitioned: %d over, %d under", len(markets[0].Over), len(markets[0].Under))
	}
}

func TestBuildDropsInvalidOdds(t *testing.T) {
	quotes := []models.Quote{
		quote("draftkings", models.SideOver, -110, 8.5),
		quote("fanduel", models.SideOver, 50, 8.5), // invalid magnitude
		quote("betmgm", models.SideOver, 0, 8.5),   // invalid zero
	}

	markets := Build("evt1", "judge", "home_runs", quotes)

	if len(markets) != 1 {
		t.Fatalf("expected 1 market, got %d", len(markets))
	}
	if len(markets[0].Over) != 1 {
		t.Errorf("expected 1 valid quote, got %d", len(markets[0].Over))
	}
	if markets[0].Over[0].SportsbookID != "draftkings" {
		t.Errorf("wrong surviving quote: %s", markets[0].Over[0].SportsbookID)
	}
}

func TestBuildKeepsLatestDuplicate(t *testing.T) {
	older := quote("draftkings", models.SideOver, -110, 8.5)
	newer := quote("draftkings", models.SideOver, -120, 8.5)
	newer.ObservedAt = older.ObservedAt.Add(time.Minute)

	// Arrival order must not matter.
	for _, quotes := range [][]models.Quote{{older, newer}, {newer, older}} {
		markets := Build("evt1", "judge", "home_runs", quotes)
		if len(markets) != 1 || len(markets[0].Over) != 1 {
			t.Fatalf("expected 1 market with 1 quote, got %+v", markets)
		}
		if markets[0].Over[0].AmericanOdds != -120 {
			t.Errorf("expected latest quote (-120), got %d", markets[0].Over[0].AmericanOdds)
		}
	}
}

func TestBuildEqualTimestampTieBreak(t *testing.T) {
	// Same book, line, side, and ObservedAt: the more favorable price
	// must survive no matter which quote arrives first.
	worse := quote("draftkings", models.SideOver, -110, 8.5)
	better := quote("draftkings", models.SideOver, 105, 8.5)

	for _, quotes := range [][]models.Quote{{worse, better}, {better, worse}} {
		markets := Build("evt1", "judge", "home_runs", quotes)
		if len(markets) != 1 || len(markets[0].Over) != 1 {
			t.Fatalf("expected 1 market with 1 quote, got %+v", markets)
		}
		if markets[0].Over[0].AmericanOdds != 105 {
			t.Errorf("expected the better price (+105) to win, got %d", markets[0].Over[0].AmericanOdds)
		}
	}
}

func TestBuildDeterministicOrder(t *testing.T) {
	a := []models.Quote{
		quote("fanduel", models.SideOver, -115, 8.5),
		quote("draftkings", models.SideOver, -110, 8.5),
		quote("betmgm", models.SideOver, 100, 8.5),
	}
	b := []models.Quote{a[2], a[0], a[1]}

	ma := Build("evt1", "judge", "home_runs", a)
	mb := Build("evt1", "judge", "home_runs", b)

	for i := range ma[0].Over {
		if ma[0].Over[i].SportsbookID != mb[0].Over[i].SportsbookID {
			t.Errorf("order differs at %d: %s vs %s", i, ma[0].Over[i].SportsbookID, mb[0].Over[i].SportsbookID)
		}
	}
}

func TestBestPrice(t *testing.T) {
	quotes := []models.Quote{
		quote("draftkings", models.SideOver, -110, 8.5),
		quote("fanduel", models.SideOver, 105, 8.5),
		quote("betmgm", models.SideOver, -115, 8.5),
	}

	best := BestPrice(quotes)
	if best == nil {
		t.Fatal("expected a best price")
	}
	if best.SportsbookID != "fanduel" || best.AmericanOdds != 105 {
		t.Errorf("best = %s @ %d, want fanduel @ +105", best.SportsbookID, best.AmericanOdds)
	}
}

func TestBestPriceTieBreak(t *testing.T) {
	quotes := []models.Quote{
		quote("fanduel", models.SideOver, -110, 8.5),
		quote("draftkings", models.SideOver, -110, 8.5),
	}

	best := BestPrice(quotes)
	if best == nil {
		t.Fatal("expected a best price")
	}
	if best.SportsbookID != "draftkings" {
		t.Errorf("tie should break to lexicographically smaller book, got %s", best.SportsbookID)
	}
}

func TestBestPriceEmpty(t *testing.T) {
	if best := BestPrice(nil); best != nil {
		t.Errorf("expected nil for no quotes, got %+v", best)
	}
}

func TestFairValueOneSided(t *testing.T) {
	m := models.Market{
		Line: 8.5,
		Over: []models.Quote{quote("draftkings", models.SideOver, -110, 8.5)},
	}

	fv := FairValue(m)
	if fv.ProbOver != nil || fv.ProbUnder != nil {
		t.Errorf("one-sided market should yield nil fair values, got %+v", fv)
	}
}
