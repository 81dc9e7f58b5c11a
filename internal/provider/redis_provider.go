package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

// keyScanBatch bounds key enumeration batches so a wide market cannot
// head-of-line block the store.
const keyScanBatch = 50

// RedisProvider reads quote snapshots the upstream odds collector writes
// to Redis, keyed odds:<league>:<event>:<player>:<market>. The stored
// blob maps line → sportsbook → over/under price entries.
type RedisProvider struct {
	rdb *redis.Client
}

// NewRedisProvider creates a provider over the given client.
func NewRedisProvider(rdb *redis.Client) *RedisProvider {
	return &RedisProvider{rdb: rdb}
}

// oddsBlob mirrors the collector's stored shape. Lines may sit under a
// "lines" wrapper or at the top level, and each line's books may sit
// under a "sportsbooks" wrapper or directly, depending on collector
// version.
type oddsBlob struct {
	Lines map[string]json.RawMessage `json:"lines"`
}

type lineEntry struct {
	Sportsbooks map[string]bookEntry `json:"sportsbooks"`
}

type bookEntry struct {
	Over  *priceEntry `json:"over"`
	Under *priceEntry `json:"under"`
}

type priceEntry struct {
	Price      *int       `json:"price"`
	Link       *string    `json:"link"`
	LastUpdate *time.Time `json:"last_update"`
}

// Quotes fetches and flattens the snapshot for one player/market.
// Missing keys yield an empty list, not an error: absent data is "no
// quotes," the same as an unavailable book.
func (p *RedisProvider) Quotes(ctx context.Context, league, eventID, playerID, marketType string) ([]models.Quote, error) {
	key := fmt.Sprintf("odds:%s:%s:%s:%s", league, eventID, playerID, marketType)

	raw, err := p.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}

	return parseSnapshot([]byte(raw))
}

// LatestKey finds the most recent odds key for a player/market when the
// caller has no event ID, scanning in bounded batches.
func (p *RedisProvider) LatestKey(ctx context.Context, league, playerID, marketType string) (string, error) {
	pattern := fmt.Sprintf("odds:%s:*:%s:%s", league, playerID, marketType)

	var keys []string
	cursor := uint64(0)
	for {
		batch, next, err := p.rdb.Scan(ctx, cursor, pattern, keyScanBatch).Result()
		if err != nil {
			return "", fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return "", nil
	}

	// Event segments embed the schedule date, so the lexicographically
	// last key is the most recent event.
	sort.Strings(keys)
	return keys[len(keys)-1], nil
}

// QuotesByKey fetches a snapshot by exact key, used with LatestKey.
func (p *RedisProvider) QuotesByKey(ctx context.Context, key string) ([]models.Quote, error) {
	raw, err := p.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}

	return parseSnapshot([]byte(raw))
}

// parseSnapshot flattens a stored blob into quotes. Entries without a
// price and lines that fail to parse are skipped; a partially malformed
// snapshot still yields whatever is usable.
func parseSnapshot(raw []byte) ([]models.Quote, error) {
	var blob oddsBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil, fmt.Errorf("parsing odds snapshot: %w", err)
	}

	lines := blob.Lines
	if lines == nil {
		// Older collector versions store lines at the top level.
		if err := json.Unmarshal(raw, &lines); err != nil {
			return nil, fmt.Errorf("unsupported odds snapshot format")
		}
	}

	var quotes []models.Quote
	for lineStr, rawLine := range lines {
		var line float64
		if _, err := fmt.Sscanf(lineStr, "%f", &line); err != nil {
			continue
		}

		var entry lineEntry
		if err := json.Unmarshal(rawLine, &entry); err != nil {
			continue
		}
		if entry.Sportsbooks == nil {
			if err := json.Unmarshal(rawLine, &entry.Sportsbooks); err != nil {
				continue
			}
		}

		for book, sides := range entry.Sportsbooks {
			if q := sideQuote(book, models.SideOver, line, sides.Over); q != nil {
				quotes = append(quotes, *q)
			}
			if q := sideQuote(book, models.SideUnder, line, sides.Under); q != nil {
				quotes = append(quotes, *q)
			}
		}
	}

	return quotes, nil
}

func sideQuote(book string, side models.Side, line float64, entry *priceEntry) *models.Quote {
	if entry == nil || entry.Price == nil {
		return nil
	}

	observed := time.Time{}
	if entry.LastUpdate != nil {
		observed = *entry.LastUpdate
	}

	return &models.Quote{
		SportsbookID: book,
		Side:         side,
		AmericanOdds: *entry.Price,
		Line:         line,
		ObservedAt:   observed,
		DeepLink:     entry.Link,
	}
}
