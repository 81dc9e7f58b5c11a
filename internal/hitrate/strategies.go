package hitrate

import (
	"context"
	"fmt"
)

// Strategy is one named way of loading hit-rate profiles for a
// sport/market. A strategy that cannot serve the request returns
// ok=false so the loader moves on to the next one; errors are recorded
// but also fall through, so a broken cache never fails the request while
// a slower source can still answer.
type Strategy[T any] struct {
	Name  string
	Fetch func(ctx context.Context, sport, marketKey string) (T, bool, error)
}

// Loader runs an ordered list of strategies until one produces a value.
// The order is fixed at construction, which keeps the fallback chain
// auditable and lets each step be tested on its own.
type Loader[T any] struct {
	strategies []Strategy[T]
}

// NewLoader builds a loader over the given strategies, tried in order.
func NewLoader[T any](strategies ...Strategy[T]) *Loader[T] {
	return &Loader[T]{strategies: strategies}
}

// Load tries each strategy in turn, returning the first hit along with
// the name of the strategy that served it.
func (l *Loader[T]) Load(ctx context.Context, sport, marketKey string) (T, string, error) {
	var zero T
	var lastErr error

	for _, s := range l.strategies {
		value, ok, err := s.Fetch(ctx, sport, marketKey)
		if err != nil {
			lastErr = fmt.Errorf("strategy %s: %w", s.Name, err)
			continue
		}
		if ok {
			return value, s.Name, nil
		}
	}

	if lastErr != nil {
		return zero, "", lastErr
	}
	return zero, "", fmt.Errorf("no strategy produced hit-rate data for %s/%s", sport, marketKey)
}
