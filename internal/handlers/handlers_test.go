package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oddsmash/oddsmash-engine/internal/hub"
)

func newTestHandler() *Handler {
	// Providers stay nil: these tests only exercise paths that reject
	// the request before any I/O happens.
	return NewHandler(nil, nil, nil, hub.NewHub(), "mlb")
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", body["status"])
	}
}

func TestLadderRequiresParams(t *testing.T) {
	h := newTestHandler()

	tests := []string{
		"/api/v1/ladder",
		"/api/v1/ladder?player=judge",
		"/api/v1/ladder?market=home_runs",
	}

	for _, target := range tests {
		req := httptest.NewRequest("GET", target, nil)
		rec := httptest.NewRecorder()
		h.Ladder(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestEVRequiresParams(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("GET", "/api/v1/ev?player=judge", nil)
	rec := httptest.NewRecorder()
	h.EV(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHitRatesRequiresParams(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest("GET", "/api/v1/hit-rates?market=home_runs", nil)
	rec := httptest.NewRecorder()
	h.HitRates(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON error response: %v", err)
	}
	if body["error"] == "" {
		t.Error("error response should carry a message")
	}
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest("GET", "/x?line=8.5&limit=25&bad=oops", nil)

	if v, ok := queryFloat(req, "line"); !ok || v != 8.5 {
		t.Errorf("queryFloat(line) = %f, %v", v, ok)
	}
	if _, ok := queryFloat(req, "missing"); ok {
		t.Error("queryFloat on missing param should report !ok")
	}
	if _, ok := queryFloat(req, "bad"); ok {
		t.Error("queryFloat on unparseable param should report !ok")
	}

	if v, ok := queryInt(req, "limit"); !ok || v != 25 {
		t.Errorf("queryInt(limit) = %d, %v", v, ok)
	}
}
