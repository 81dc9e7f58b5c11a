// Package provider gathers quote snapshots from external collaborators.
// The engine itself never fetches; everything here sits at the I/O
// boundary and feeds pure computations downstream.
package provider

import (
	"context"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

// QuoteProvider returns the current quote snapshot for one player/market
// of an event. Providers may return an empty or partial list when books
// are unavailable; callers must not assume completeness.
type QuoteProvider interface {
	Quotes(ctx context.Context, league, eventID, playerID, marketType string) ([]models.Quote, error)
}

// ProfileProvider returns the hit-rate history for one player/market.
type ProfileProvider interface {
	Profile(ctx context.Context, sport, marketKey, playerName string) (*models.HitRateProfile, error)
}
