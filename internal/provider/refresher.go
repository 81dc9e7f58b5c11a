package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

const (
	// trackedKey lists "event|player|market" tuples the refresher keeps
	// fresh, maintained by the upstream scheduling job.
	trackedKeyFmt = "tracked:%s"

	snapshotTTL = 10 * time.Minute
)

// Refresher pulls fresh quotes from the vendor API for every tracked
// player/market and writes them back to Redis in the collector's
// snapshot format, so the rest of the engine reads one shape regardless
// of where quotes came from.
type Refresher struct {
	rdb      *redis.Client
	source   QuoteProvider
	league   string
	interval time.Duration
}

// NewRefresher creates a refresher over the given quote source.
func NewRefresher(rdb *redis.Client, source QuoteProvider, league string, interval time.Duration) *Refresher {
	return &Refresher{
		rdb:      rdb,
		source:   source,
		league:   league,
		interval: interval,
	}
}

// Run refreshes immediately, then on every tick until the context ends.
func (r *Refresher) Run(ctx context.Context) {
	fmt.Printf("✓ Quote refresher started (league=%s, interval=%s)\n", r.league, r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refreshOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("🛑 Quote refresher stopped")
			return
		case <-ticker.C:
			r.refreshOnce(ctx)
		}
	}
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	tuples, err := r.rdb.SMembers(ctx, fmt.Sprintf(trackedKeyFmt, r.league)).Result()
	if err != nil && err != redis.Nil {
		fmt.Printf("⚠️  Refresh: reading tracked set failed: %v\n", err)
		return
	}
	if len(tuples) == 0 {
		return
	}

	refreshed := 0
	for _, tuple := range tuples {
		parts := strings.SplitN(tuple, "|", 3)
		if len(parts) != 3 {
			continue
		}
		eventID, playerID, marketType := parts[0], parts[1], parts[2]

		quotes, err := r.source.Quotes(ctx, r.league, eventID, playerID, marketType)
		if err != nil {
			// Context cancellation; partial book failures never error.
			return
		}
		if len(quotes) == 0 {
			continue
		}

		if err := r.writeSnapshot(ctx, eventID, playerID, marketType, quotes); err != nil {
			fmt.Printf("⚠️  Refresh: writing snapshot for %s failed: %v\n", tuple, err)
			continue
		}
		refreshed++
	}

	fmt.Printf("📊 Refresh: %d/%d snapshots updated\n", refreshed, len(tuples))
}

// writeSnapshot serializes quotes into the collector's blob shape and
// stores it under the standard odds key.
func (r *Refresher) writeSnapshot(ctx context.Context, eventID, playerID, marketType string, quotes []models.Quote) error {
	lines := make(map[string]map[string]map[string]*priceEntry)

	for i := range quotes {
		q := quotes[i]
		lineStr := strconv.FormatFloat(q.Line, 'f', -1, 64)

		books, ok := lines[lineStr]
		if !ok {
			books = make(map[string]map[string]*priceEntry)
			lines[lineStr] = books
		}
		sides, ok := books[q.SportsbookID]
		if !ok {
			sides = make(map[string]*priceEntry)
			books[q.SportsbookID] = sides
		}

		price := q.AmericanOdds
		observed := q.ObservedAt
		sides[string(q.Side)] = &priceEntry{
			Price:      &price,
			Link:       q.DeepLink,
			LastUpdate: &observed,
		}
	}

	blob, err := json.Marshal(map[string]any{"lines": lines})
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	key := fmt.Sprintf("odds:%s:%s:%s:%s", r.league, eventID, playerID, marketType)
	if err := r.rdb.Set(ctx, key, blob, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}

	return nil
}
