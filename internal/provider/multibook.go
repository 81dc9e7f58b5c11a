package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/oddsmash/oddsmash-engine/internal/metrics"
	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

// MultiBookProvider gathers quotes from the vendor API one book at a
// time, fanning out with bounded concurrency. A book that fails or times
// out is excluded from the snapshot; the request proceeds with whichever
// books answered.
type MultiBookProvider struct {
	client      *APIClient
	books       []string
	concurrency int
	timeout     time.Duration
}

// NewMultiBookProvider creates a provider over the configured book list.
func NewMultiBookProvider(client *APIClient, books []string, concurrency int, timeout time.Duration) *MultiBookProvider {
	return &MultiBookProvider{
		client:      client,
		books:       books,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// Quotes implements QuoteProvider. It never fails the whole batch: the
// error is non-nil only when the context itself was cancelled.
func (p *MultiBookProvider) Quotes(ctx context.Context, league, eventID, playerID, marketType string) ([]models.Quote, error) {
	results := FanOut(ctx, p.books, p.concurrency, p.timeout, func(ctx context.Context, book string) ([]models.Quote, error) {
		return p.client.FetchBook(ctx, book, league, eventID, marketType)
	})

	quotes, failed := Successful(results)
	for _, book := range failed {
		metrics.ProviderFailures.WithLabelValues(book).Inc()
		fmt.Printf("⚠️  book %s excluded from snapshot (fetch failed)\n", book)
	}

	if err := ctx.Err(); err != nil {
		return quotes, err
	}

	return quotes, nil
}
