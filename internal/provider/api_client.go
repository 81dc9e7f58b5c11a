package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

// APIClient fetches raw quotes from the upstream odds vendor, which
// serves one sportsbook per request. It backs the fan-out path when the
// engine is configured to pull fresh quotes instead of reading the
// collector's Redis snapshots.
type APIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAPIClient creates a vendor API client.
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// vendorResponse mirrors the vendor's per-book odds payload.
type vendorResponse struct {
	Odds []struct {
		Market    string     `json:"market"`
		Selection string     `json:"selection"`
		Line      float64    `json:"line"`
		Price     int        `json:"price"`
		Link      *string    `json:"link"`
		Updated   *time.Time `json:"updated"`
	} `json:"odds"`
}

// FetchBook fetches one sportsbook's quotes for an event and market.
// Errors (including context deadline) are returned as provider
// unavailability so the caller can exclude the book and continue.
func (c *APIClient) FetchBook(ctx context.Context, book, league, eventID, marketType string) ([]models.Quote, error) {
	endpoint := fmt.Sprintf("%s/v1/%s/%s/odds?event=%s&market=%s&key=%s",
		c.baseURL, league, url.PathEscape(book),
		url.QueryEscape(eventID), url.QueryEscape(marketType), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: vendor status=%d body=%s", models.ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var payload vendorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding vendor response: %w", err)
	}

	quotes := make([]models.Quote, 0, len(payload.Odds))
	for _, o := range payload.Odds {
		side := models.SideOver
		if o.Selection == "under" {
			side = models.SideUnder
		}

		observed := time.Time{}
		if o.Updated != nil {
			observed = *o.Updated
		}

		quotes = append(quotes, models.Quote{
			SportsbookID: book,
			Side:         side,
			AmericanOdds: o.Price,
			Line:         o.Line,
			ObservedAt:   observed,
			DeepLink:     o.Link,
		})
	}

	return quotes, nil
}
