package handlers

import (
	"net/http"
	"strings"

	"github.com/oddsmash/oddsmash-engine/internal/hitrate"
	"github.com/oddsmash/oddsmash-engine/internal/metrics"
	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

// HitRates recomputes a player's hit rates for a requested line and
// direction across every recency window.
// GET /api/v1/hit-rates?sport=&market=&player=&line=&direction=
func (h *Handler) HitRates(w http.ResponseWriter, r *http.Request) {
	sport := r.URL.Query().Get("sport")
	if sport == "" {
		sport = h.defaultLeague
	}
	marketKey := r.URL.Query().Get("market")
	playerName := r.URL.Query().Get("player")

	if marketKey == "" || playerName == "" {
		countRequest("hit-rates", http.StatusBadRequest)
		respondError(w, http.StatusBadRequest, "missing required params: market, player")
		return
	}

	direction := models.SideOver
	if strings.EqualFold(r.URL.Query().Get("direction"), string(models.SideUnder)) {
		direction = models.SideUnder
	}

	profiles, source, err := h.profiles.Load(r.Context(), sport, marketKey)
	if err != nil {
		countRequest("hit-rates", http.StatusInternalServerError)
		respondError(w, http.StatusInternalServerError, "failed to load hit-rate data")
		return
	}
	metrics.HitRateSource.WithLabelValues(source).Inc()

	profile := findProfile(profiles, playerName)
	if profile == nil {
		countRequest("hit-rates", http.StatusNotFound)
		respondError(w, http.StatusNotFound, "player not found")
		return
	}

	line, hasLine := queryFloat(r, "line")
	if !hasLine {
		line = profile.Line
	}

	results := hitrate.RecalculateAll(*profile, line, direction)

	countRequest("hit-rates", http.StatusOK)
	respondJSON(w, http.StatusOK, map[string]any{
		"player":            profile.PlayerName,
		"market":            profile.Market,
		"line":              line,
		"direction":         direction,
		"standard_line":     profile.Line,
		"is_alternate_line": hitrate.IsAlternateLine(profile.Line, line),
		"windows":           results,
		"source":            source,
	})
}

func findProfile(profiles []models.HitRateProfile, playerName string) *models.HitRateProfile {
	for i := range profiles {
		if strings.EqualFold(profiles[i].PlayerName, playerName) {
			return &profiles[i]
		}
	}

	// Relaxed pass: substring match tolerates suffixes and middle
	// initials the caller may not know.
	needle := strings.ToLower(strings.TrimSpace(playerName))
	for i := range profiles {
		if strings.Contains(strings.ToLower(profiles[i].PlayerName), needle) {
			return &profiles[i]
		}
	}

	return nil
}
