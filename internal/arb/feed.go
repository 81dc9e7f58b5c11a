package arb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

const (
	feedKey    = "feature:arbitrage_opportunities"
	feedMaxLen = 500
	feedTTL    = 24 * time.Hour
)

// Feed holds the most recent arbitrage opportunities in a Redis list so
// the HTTP surface and dashboards read a stable snapshot instead of
// rescanning quotes.
type Feed struct {
	rdb *redis.Client
}

// NewFeed creates a feed over the given Redis client.
func NewFeed(rdb *redis.Client) *Feed {
	return &Feed{rdb: rdb}
}

// Publish replaces the feed contents with a fresh scan result.
func (f *Feed) Publish(ctx context.Context, opportunities []models.ArbitrageOpportunity) error {
	pipe := f.rdb.Pipeline()
	pipe.Del(ctx, feedKey)

	for _, opp := range opportunities {
		data, err := json.Marshal(opp)
		if err != nil {
			return fmt.Errorf("marshaling opportunity: %w", err)
		}
		pipe.RPush(ctx, feedKey, data)
	}

	pipe.LTrim(ctx, feedKey, 0, feedMaxLen-1)
	pipe.Expire(ctx, feedKey, feedTTL)

	_, err := pipe.Exec(ctx)
	return err
}

// Read returns feed entries at or above minArbPct, sorted by arbitrage
// percentage descending then recency, truncated to limit when limit > 0.
func (f *Feed) Read(ctx context.Context, minArbPct float64, limit int) ([]models.ArbitrageOpportunity, error) {
	entries, err := f.rdb.LRange(ctx, feedKey, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("reading arbitrage feed: %w", err)
	}

	opportunities := make([]models.ArbitrageOpportunity, 0, len(entries))
	for _, entry := range entries {
		var opp models.ArbitrageOpportunity
		if err := json.Unmarshal([]byte(entry), &opp); err != nil {
			continue
		}
		if opp.ArbPercentage < minArbPct {
			continue
		}
		opportunities = append(opportunities, opp)
	}

	sort.Slice(opportunities, func(i, j int) bool {
		if opportunities[i].ArbPercentage != opportunities[j].ArbPercentage {
			return opportunities[i].ArbPercentage > opportunities[j].ArbPercentage
		}
		return opportunities[i].FoundAt.After(opportunities[j].FoundAt)
	})

	if limit > 0 && len(opportunities) > limit {
		opportunities = opportunities[:limit]
	}

	return opportunities, nil
}
