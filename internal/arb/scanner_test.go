package arb

import (
	"math"
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

func fixedNow() time.Time {
	return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
}

func upcomingEvent() Event {
	return Event{
		Sport:     "mlb",
		EventID:   "2026-08-29-NYY-BOS",
		StartTime: fixedNow().Add(2 * time.Hour),
	}
}

func arbMarket() models.Market {
	// +120 over at draftkings, +110 under at fanduel: combined implied
	// 0.9307, a ~7.44% arb.
	return models.Market{
		Line: 8.5,
		Over: []models.Quote{
			quote("draftkings", models.SideOver, 120, 8.5),
			quote("betmgm", models.SideOver, -110, 8.5),
		},
		Under: []models.Quote{
			quote("fanduel", models.SideUnder, 110, 8.5),
			quote("betmgm", models.SideUnder, -110, 8.5),
		},
	}
}

func TestScanLineFindsArb(t *testing.T) {
	s := NewScanner(models.ModePreMatch, 0)
	s.now = fixedNow

	opp := s.ScanLine(upcomingEvent(), arbMarket())
	if opp == nil {
		t.Fatal("expected an opportunity")
	}

	if opp.OverBook != "draftkings" || opp.UnderBook != "fanduel" {
		t.Errorf("books = %s/%s, want draftkings/fanduel", opp.OverBook, opp.UnderBook)
	}
	if math.Abs(opp.ArbPercentage-7.443) > 0.01 {
		t.Errorf("arb%% = %f, want ~7.443", opp.ArbPercentage)
	}
	if math.Abs(opp.CombinedImplied-0.9307) > 0.001 {
		t.Errorf("combined implied = %f, want ~0.9307", opp.CombinedImplied)
	}
	if math.Abs(opp.StakeOver+opp.StakeUnder-1.0) > 0.0001 {
		t.Errorf("stakes sum to %f, want 1.0", opp.StakeOver+opp.StakeUnder)
	}
	if opp.ID == "" {
		t.Error("opportunity should carry an ID")
	}
}

func TestScanLineNoArbOnViggedMarket(t *testing.T) {
	s := NewScanner(models.ModePreMatch, 0)
	s.now = fixedNow

	m := models.Market{
		Line: 8.5,
		Over: []models.Quote{
			quote("draftkings", models.SideOver, -110, 8.5),
		},
		Under: []models.Quote{
			quote("fanduel", models.SideUnder, -110, 8.5),
		},
	}

	if opp := s.ScanLine(upcomingEvent(), m); opp != nil {
		t.Errorf("-110/-110 has combined implied > 1.0, got opportunity %+v", opp)
	}
}

func TestScanLineOneSided(t *testing.T) {
	s := NewScanner(models.ModePreMatch, 0)
	s.now = fixedNow

	m := models.Market{
		Line: 8.5,
		Over: []models.Quote{
			quote("draftkings", models.SideOver, 500, 8.5),
		},
	}

	if opp := s.ScanLine(upcomingEvent(), m); opp != nil {
		t.Errorf("one-sided line can never arb, got %+v", opp)
	}
}

func TestScanLineMinThreshold(t *testing.T) {
	s := NewScanner(models.ModePreMatch, 10.0) // above the ~7.44% this market offers
	s.now = fixedNow

	if opp := s.ScanLine(upcomingEvent(), arbMarket()); opp != nil {
		t.Errorf("below min threshold, got %+v", opp)
	}
}

func TestPreMatchExcludesStartedEvents(t *testing.T) {
	s := NewScanner(models.ModePreMatch, 0)
	s.now = fixedNow

	started := upcomingEvent()
	started.StartTime = fixedNow().Add(-time.Minute)

	if opp := s.ScanLine(started, arbMarket()); opp != nil {
		t.Errorf("pre-match mode must skip started events, got %+v", opp)
	}
}

func TestLiveModeGraceWindow(t *testing.T) {
	s := NewScanner(models.ModeLive, 0)
	s.now = fixedNow

	tests := []struct {
		name      string
		startedAt time.Duration // relative to now
		isLive    bool
		expectOpp bool
	}{
		{"live, started an hour ago", -time.Hour, true, true},
		{"live, within grace window", -23 * time.Hour, true, true},
		{"live, past grace window", -25 * time.Hour, true, false},
		{"not flagged live", -time.Hour, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := upcomingEvent()
			event.StartTime = fixedNow().Add(tt.startedAt)
			event.IsLive = tt.isLive

			opp := s.ScanLine(event, arbMarket())
			if (opp != nil) != tt.expectOpp {
				t.Errorf("got opportunity=%v, want %v", opp != nil, tt.expectOpp)
			}
		})
	}
}

func TestScanMarkets(t *testing.T) {
	s := NewScanner(models.ModePreMatch, 0)
	s.now = fixedNow

	vigged := models.Market{
		Line:  9.5,
		Over:  []models.Quote{quote("draftkings", models.SideOver, -110, 9.5)},
		Under: []models.Quote{quote("fanduel", models.SideUnder, -110, 9.5)},
	}

	found := s.ScanMarkets(upcomingEvent(), []models.Market{arbMarket(), vigged})
	if len(found) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(found))
	}
	if found[0].Line != 8.5 {
		t.Errorf("opportunity line = %f, want 8.5", found[0].Line)
	}
}
