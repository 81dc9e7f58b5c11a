package handlers

import (
	"net/http"
	"time"

	"github.com/oddsmash/oddsmash-engine/internal/ladder"
	"github.com/oddsmash/oddsmash-engine/internal/market"
	"github.com/oddsmash/oddsmash-engine/internal/metrics"
	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

// Ladder serves the per-line multi-book view for one player/market.
// GET /api/v1/ladder?league=&player=&market=&event_id=
func (h *Handler) Ladder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	league := r.URL.Query().Get("league")
	if league == "" {
		league = h.defaultLeague
	}
	playerID := r.URL.Query().Get("player")
	marketType := r.URL.Query().Get("market")
	eventID := r.URL.Query().Get("event_id")

	if playerID == "" || marketType == "" {
		countRequest("ladder", http.StatusBadRequest)
		respondError(w, http.StatusBadRequest, "missing required params: player, market")
		return
	}

	quotes, err := h.fetchQuotes(r, league, eventID, playerID, marketType)
	if err != nil {
		countRequest("ladder", http.StatusBadGateway)
		respondError(w, http.StatusBadGateway, "quote provider unavailable")
		return
	}

	result := ladder.Build(eventID, playerID, marketType, quotes)

	metrics.LadderBuildSeconds.Observe(time.Since(start).Seconds())
	countRequest("ladder", http.StatusOK)
	respondJSON(w, http.StatusOK, result)
}

// EV serves per-book expected value for every quote of one
// player/market, evaluated against excluded-self baselines.
// GET /api/v1/ev?league=&player=&market=&event_id=&line=
func (h *Handler) EV(w http.ResponseWriter, r *http.Request) {
	league := r.URL.Query().Get("league")
	if league == "" {
		league = h.defaultLeague
	}
	playerID := r.URL.Query().Get("player")
	marketType := r.URL.Query().Get("market")
	eventID := r.URL.Query().Get("event_id")

	if playerID == "" || marketType == "" {
		countRequest("ev", http.StatusBadRequest)
		respondError(w, http.StatusBadRequest, "missing required params: player, market")
		return
	}

	quotes, err := h.fetchQuotes(r, league, eventID, playerID, marketType)
	if err != nil {
		countRequest("ev", http.StatusBadGateway)
		respondError(w, http.StatusBadGateway, "quote provider unavailable")
		return
	}

	line, hasLine := queryFloat(r, "line")

	results := make([]models.EVResult, 0)
	for _, m := range market.Build(eventID, playerID, marketType, quotes) {
		if hasLine && m.Line != line {
			continue
		}
		results = append(results, market.EvaluateAll(m)...)
	}

	countRequest("ev", http.StatusOK)
	respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(results),
		"results": results,
	})
}

// fetchQuotes reads the snapshot for a request, resolving the most
// recent event when none was named.
func (h *Handler) fetchQuotes(r *http.Request, league, eventID, playerID, marketType string) ([]models.Quote, error) {
	ctx := r.Context()

	if eventID != "" {
		return h.quotes.Quotes(ctx, league, eventID, playerID, marketType)
	}

	key, err := h.quotes.LatestKey(ctx, league, playerID, marketType)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, nil
	}

	return h.quotes.QuotesByKey(ctx, key)
}
