package handlers

import (
	"net/http"
)

// Arbitrage serves the current opportunity feed.
// GET /api/v1/arbitrage?min_arb=&limit=
func (h *Handler) Arbitrage(w http.ResponseWriter, r *http.Request) {
	minArb, _ := queryFloat(r, "min_arb")

	limit, ok := queryInt(r, "limit")
	if !ok {
		limit = 0
	}
	if limit > 500 {
		limit = 500
	}

	items, err := h.feed.Read(r.Context(), minArb, limit)
	if err != nil {
		countRequest("arbitrage", http.StatusInternalServerError)
		respondError(w, http.StatusInternalServerError, "failed to read arbitrage feed")
		return
	}

	countRequest("arbitrage", http.StatusOK)
	respondJSON(w, http.StatusOK, map[string]any{
		"count": len(items),
		"items": items,
	})
}
