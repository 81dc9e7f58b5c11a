// Package handlers wires the engine's pure computations to the HTTP
// surface. Only structurally invalid requests become user-visible
// failures; missing books and empty markets degrade to null fields.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/oddsmash/oddsmash-engine/internal/arb"
	"github.com/oddsmash/oddsmash-engine/internal/hitrate"
	"github.com/oddsmash/oddsmash-engine/internal/hub"
	"github.com/oddsmash/oddsmash-engine/internal/metrics"
	"github.com/oddsmash/oddsmash-engine/internal/provider"
	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	quotes        *provider.RedisProvider
	profiles      *hitrate.Loader[[]models.HitRateProfile]
	feed          *arb.Feed
	hub           *hub.Hub
	defaultLeague string
}

// NewHandler creates a new handler.
func NewHandler(
	quotes *provider.RedisProvider,
	profiles *hitrate.Loader[[]models.HitRateProfile],
	feed *arb.Feed,
	h *hub.Hub,
	defaultLeague string,
) *Handler {
	return &Handler{
		quotes:        quotes,
		profiles:      profiles,
		feed:          feed,
		hub:           h,
		defaultLeague: defaultLeague,
	}
}

// HealthCheck returns service health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"service":    "odds-engine",
		"ws_clients": h.hub.ClientCount(),
	})
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

func countRequest(endpoint string, status int) {
	metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

func queryFloat(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
