package provider

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

// FetchResult pairs one book with its fetch outcome. Either Quotes or
// Err is set, never both.
type FetchResult struct {
	Book   string
	Quotes []models.Quote
	Err    error
}

// FetchFunc fetches the quotes a single book currently offers.
type FetchFunc func(ctx context.Context, book string) ([]models.Quote, error)

// FanOut fetches per-book quotes with bounded concurrency and a per-book
// deadline. A book that errors or exceeds its deadline is abandoned
// without retry and reported in its result; the batch itself never
// fails. Results come back sorted by book so downstream computation is
// deterministic regardless of completion order.
func FanOut(ctx context.Context, books []string, concurrency int, perBookTimeout time.Duration, fetch FetchFunc) []FetchResult {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]FetchResult, len(books))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, book := range books {
		wg.Add(1)
		go func(i int, book string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			fetchCtx := ctx
			if perBookTimeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, perBookTimeout)
				defer cancel()
			}

			quotes, err := fetch(fetchCtx, book)
			results[i] = FetchResult{Book: book, Quotes: quotes, Err: err}
		}(i, book)
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Book < results[j].Book
	})

	return results
}

// Successful flattens the quotes of every book that fetched cleanly and
// collects the books that failed. A failed book is treated exactly as
// "no quote for that side" by everything downstream.
func Successful(results []FetchResult) (quotes []models.Quote, failed []string) {
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Book)
			continue
		}
		quotes = append(quotes, r.Quotes...)
	}
	return quotes, failed
}
