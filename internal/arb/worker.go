package arb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oddsmash/oddsmash-engine/internal/market"
	"github.com/oddsmash/oddsmash-engine/internal/metrics"
	"github.com/oddsmash/oddsmash-engine/internal/provider"
	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

const workerScanBatch = 200

// Broadcaster pushes freshly found opportunities to live subscribers.
type Broadcaster interface {
	Broadcast(opp models.ArbitrageOpportunity)
}

// Worker periodically sweeps every stored quote snapshot for a league,
// scans each line for arbitrage, and publishes the results.
type Worker struct {
	rdb      *redis.Client
	quotes   *provider.RedisProvider
	scanner  *Scanner
	feed     *Feed
	hub      Broadcaster
	league   string
	interval time.Duration
}

// NewWorker creates a scan worker.
func NewWorker(
	rdb *redis.Client,
	quotes *provider.RedisProvider,
	scanner *Scanner,
	feed *Feed,
	hub Broadcaster,
	league string,
	interval time.Duration,
) *Worker {
	return &Worker{
		rdb:      rdb,
		quotes:   quotes,
		scanner:  scanner,
		feed:     feed,
		hub:      hub,
		league:   league,
		interval: interval,
	}
}

// Run scans immediately, then on every tick until the context ends.
func (w *Worker) Run(ctx context.Context) {
	fmt.Printf("✓ Arbitrage scan worker started (league=%s, interval=%s)\n", w.league, w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.scanOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("🛑 Arbitrage scan worker stopped")
			return
		case <-ticker.C:
			w.scanOnce(ctx)
		}
	}
}

func (w *Worker) scanOnce(ctx context.Context) {
	start := time.Now()

	keys, err := w.enumerateKeys(ctx)
	if err != nil {
		fmt.Printf("⚠️  Arb scan: key enumeration failed: %v\n", err)
		return
	}

	var found []models.ArbitrageOpportunity
	events := make(map[string]Event)

	for _, key := range keys {
		eventID, playerID, marketType, ok := splitOddsKey(key)
		if !ok {
			continue
		}

		event, ok := events[eventID]
		if !ok {
			ev, evOK := w.eventFor(ctx, eventID)
			if !evOK {
				continue
			}
			event = ev
			events[eventID] = event
		}

		quotes, err := w.quotes.QuotesByKey(ctx, key)
		if err != nil {
			// One bad snapshot must not sink the sweep.
			continue
		}

		markets := market.Build(eventID, playerID, marketType, quotes)
		found = append(found, w.scanner.ScanMarkets(event, markets)...)
	}

	metrics.ArbOpportunities.Add(float64(len(found)))

	if err := w.feed.Publish(ctx, found); err != nil {
		fmt.Printf("⚠️  Arb scan: feed publish failed: %v\n", err)
	}

	for _, opp := range found {
		w.hub.Broadcast(opp)
	}

	fmt.Printf("📊 Arb scan: %d keys, %d opportunities in %s\n", len(keys), len(found), time.Since(start).Round(time.Millisecond))
}

func (w *Worker) enumerateKeys(ctx context.Context) ([]string, error) {
	pattern := fmt.Sprintf("odds:%s:*", w.league)

	var keys []string
	cursor := uint64(0)
	for {
		batch, next, err := w.rdb.Scan(ctx, cursor, pattern, workerScanBatch).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// eventFor loads scheduling context for an event. The collector writes
// event:<league>:<eventID> metadata; when it is missing the date prefix
// of the event segment still gives a usable pre-match start time.
func (w *Worker) eventFor(ctx context.Context, eventID string) (Event, bool) {
	key := fmt.Sprintf("event:%s:%s", w.league, eventID)

	raw, err := w.rdb.Get(ctx, key).Result()
	if err == nil {
		var meta struct {
			Description string    `json:"description"`
			StartTime   time.Time `json:"start_time"`
			IsLive      bool      `json:"is_live"`
		}
		if jsonErr := json.Unmarshal([]byte(raw), &meta); jsonErr == nil && !meta.StartTime.IsZero() {
			return Event{
				Sport:       w.league,
				EventID:     eventID,
				Description: meta.Description,
				StartTime:   meta.StartTime,
				IsLive:      meta.IsLive,
			}, true
		}
	}
	if err != nil && err != redis.Nil {
		return Event{}, false
	}

	if len(eventID) >= 10 {
		if date, parseErr := time.Parse("2006-01-02", eventID[:10]); parseErr == nil {
			return Event{
				Sport:     w.league,
				EventID:   eventID,
				StartTime: date.Add(24*time.Hour - time.Second),
			}, true
		}
	}

	return Event{}, false
}

// splitOddsKey breaks odds:<league>:<event>:<player>:<market> into its
// segments. Player segments never contain colons; market keys may.
func splitOddsKey(key string) (eventID, playerID, marketType string, ok bool) {
	parts := strings.SplitN(key, ":", 5)
	if len(parts) != 5 || parts[0] != "odds" {
		return "", "", "", false
	}
	return parts[2], parts[3], parts[4], true
}
