package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/condortools/sweepd/internal/cleaner"
)

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	UptimeSeconds float64               `json:"uptime_seconds"`
	DryRun        bool                  `json:"dry_run"`
	Stats         cleaner.StatsSnapshot `json:"stats"`
}

// handleStatus returns an http.HandlerFunc for GET /status.
func (g *Gateway) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := StatusResponse{
			UptimeSeconds: time.Since(g.startedAt).Truncate(time.Second).Seconds(),
			DryRun:        g.dryRun,
			Stats:         g.stats.Snapshot(),
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
