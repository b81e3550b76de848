package roundel

import (
	"encoding/json"
	"net/http"

	"github.com/lmmx/roundel/fleet"
)

type healthResponse struct {
	Status     string       `json:"status"`
	Mode       string       `json:"mode"`
	Source     string       `json:"source"`
	Counts     fleet.Counts `json:"counts"`
	Paused     bool         `json:"paused"`
	IntervalMS int64        `json:"interval_ms"`
	Clients    int          `json:"clients"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snap := h.sim.Snapshot()
	resp := healthResponse{
		Status:     "ok",
		Mode:       string(h.sim.Mode()),
		Source:     snap.Source,
		Counts:     snap.Counts,
		Paused:     snap.Paused,
		IntervalMS: h.sim.Interval().Milliseconds(),
		Clients:    h.sim.Hub().Clients(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}
