package hitrate

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

const (
	// aggregatedTTL bounds how long a rebuilt market-wide aggregate
	// stays cached before the slower sources are consulted again.
	aggregatedTTL = 5 * time.Minute

	// scanBatchSize keeps key enumeration in bounded batches so large
	// markets cannot head-of-line block the store.
	scanBatchSize = 200

	// mgetBatchSize caps how many profile keys are fetched per MGET.
	mgetBatchSize = 100
)

// Store reads hit-rate profiles from the cache and the relational
// history store. It owns the three loading strategies: aggregated cache,
// individual key scan, and database recompute.
type Store struct {
	rdb *redis.Client
	db  *sql.DB
}

// NewStore creates a profile store. db may be nil when no relational
// source is configured; the database strategy then reports a miss.
func NewStore(rdb *redis.Client, db *sql.DB) *Store {
	return &Store{rdb: rdb, db: db}
}

// Loader assembles the ordered fallback chain for profile loading:
// aggregated cache first, then a batched scan of individual keys, then
// the database.
func (s *Store) Loader() *Loader[[]models.HitRateProfile] {
	return NewLoader(
		Strategy[[]models.HitRateProfile]{Name: "aggregated-cache", Fetch: s.fetchAggregated},
		Strategy[[]models.HitRateProfile]{Name: "key-scan", Fetch: s.fetchByScan},
		Strategy[[]models.HitRateProfile]{Name: "database", Fetch: s.fetchFromDB},
	)
}

func aggregatedKey(sport, marketKey string) string {
	return fmt.Sprintf("hit_rate_market:%s:%s", sport, marketKey)
}

// fetchAggregated reads the pre-aggregated market blob, the fast path.
func (s *Store) fetchAggregated(ctx context.Context, sport, marketKey string) ([]models.HitRateProfile, bool, error) {
	data, err := s.rdb.Get(ctx, aggregatedKey(sport, marketKey)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading aggregated cache: %w", err)
	}

	var profiles []models.HitRateProfile
	if err := json.Unmarshal([]byte(data), &profiles); err != nil {
		return nil, false, fmt.Errorf("parsing aggregated cache: %w", err)
	}

	return profiles, len(profiles) > 0, nil
}

// fetchByScan enumerates individual profile keys in bounded batches and
// fetches them with pipelined MGETs. On success the aggregate is written
// back so the next request takes the fast path.
func (s *Store) fetchByScan(ctx context.Context, sport, marketKey string) ([]models.HitRateProfile, bool, error) {
	pattern := fmt.Sprintf("hit_rate:%s:*:%s", sport, marketKey)

	var keys []string
	cursor := uint64(0)
	for {
		batch, next, err := s.rdb.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, false, fmt.Errorf("scanning profile keys: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return nil, false, nil
	}

	var profiles []models.HitRateProfile
	for start := 0; start < len(keys); start += mgetBatchSize {
		end := start + mgetBatchSize
		if end > len(keys) {
			end = len(keys)
		}

		values, err := s.rdb.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, false, fmt.Errorf("fetching profile batch: %w", err)
		}

		for _, v := range values {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			var p models.HitRateProfile
			if err := json.Unmarshal([]byte(raw), &p); err != nil {
				continue // one bad blob must not sink the batch
			}
			profiles = append(profiles, p)
		}
	}

	if len(profiles) == 0 {
		return nil, false, nil
	}

	s.cacheAggregated(ctx, sport, marketKey, profiles)
	return profiles, true, nil
}

// fetchFromDB recomputes the market's profiles from the relational
// history store, the slowest and most complete source.
func (s *Store) fetchFromDB(ctx context.Context, sport, marketKey string) ([]models.HitRateProfile, bool, error) {
	if s.db == nil {
		return nil, false, nil
	}

	query := `
		SELECT player_id, player_name, team_abbreviation, market, line,
		       recent_games, points_histogram, season_hit_rate,
		       season_games_count, avg_stat_per_game,
		       last_5_hit_rate, last_10_hit_rate, last_20_hit_rate
		FROM player_hit_rate_profiles
		WHERE sport = $1 AND market = $2
	`

	rows, err := s.db.QueryContext(ctx, query, sport, marketKey)
	if err != nil {
		return nil, false, fmt.Errorf("querying hit-rate profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.HitRateProfile
	for rows.Next() {
		var p models.HitRateProfile
		var team sql.NullString
		var recentGames, histogram []byte

		err := rows.Scan(
			&p.PlayerID,
			&p.PlayerName,
			&team,
			&p.Market,
			&p.Line,
			&recentGames,
			&histogram,
			&p.SeasonHitRate,
			&p.SeasonGamesCount,
			&p.AvgStatPerGame,
			&p.Last5HitRate,
			&p.Last10HitRate,
			&p.Last20HitRate,
		)
		if err != nil {
			return nil, false, fmt.Errorf("scanning profile row: %w", err)
		}

		p.TeamAbbreviation = team.String
		if err := json.Unmarshal(recentGames, &p.RecentGames); err != nil {
			continue
		}
		if err := json.Unmarshal(histogram, &p.Histogram); err != nil {
			continue
		}

		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	if len(profiles) == 0 {
		return nil, false, nil
	}

	s.cacheAggregated(ctx, sport, marketKey, profiles)
	return profiles, true, nil
}

// cacheAggregated writes the rebuilt aggregate back to the cache.
// Failures here are logged by the caller's metrics, never propagated:
// caching is an optimization, not a correctness requirement.
func (s *Store) cacheAggregated(ctx context.Context, sport, marketKey string, profiles []models.HitRateProfile) {
	data, err := json.Marshal(profiles)
	if err != nil {
		return
	}
	s.rdb.Set(ctx, aggregatedKey(sport, marketKey), data, aggregatedTTL)
}
