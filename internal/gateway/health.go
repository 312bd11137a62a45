package gateway

import (
	"encoding/json"
	"net/http"
)

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status string `json:"status"` // "ok" or "degraded"
	Passes int64  `json:"passes"`
}

// handleHealth returns an http.HandlerFunc for GET /health.
// Returns 200 while the loop is alive; 503 if the last pass was skipped
// (no submit directory configured).
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap := g.stats.Snapshot()

		resp := HealthResponse{
			Status: "ok",
			Passes: snap.Passes,
		}
		if snap.Passes > 0 && snap.LastPass.Skipped {
			resp.Status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status == "degraded" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
