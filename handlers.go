package roundel

import (
	"net/http"
	"time"

	"github.com/lmmx/roundel/formatter"
	"github.com/lmmx/roundel/resolver"
)

// ProducerRef names this service in snapshot deliveries.
const ProducerRef = "roundel"

type handlers struct {
	sim *Simulator
}

type countsResponse struct {
	Buses  int `json:"buses"`
	Trains int `json:"trains"`
	Total  int `json:"total"`
}

type controlResponse struct {
	OK       bool   `json:"ok"`
	Paused   *bool  `json:"paused,omitempty"`
	Follow   *bool  `json:"follow,omitempty"`
	Interval int64  `json:"interval_ms,omitempty"`
	Mode     string `json:"mode,omitempty"`
}

func (h *handlers) counts(w http.ResponseWriter, r *http.Request) {
	c := h.sim.GetVehicleCounts()
	writeJSON(w, countsResponse{Buses: c.Buses, Trains: c.Trains, Total: c.Total})
}

func (h *handlers) snapshot(r *http.Request) (*formatter.Response, error) {
	q := r.URL.Query()
	mode, err := normalizeVehicleMode(q.Get("vehicleMode"))
	if err != nil {
		return nil, err
	}
	res := formatter.BuildVehicleMonitoring(h.sim.Snapshot(), h.sim.Projection(), time.Now(), h.sim.Interval(), ProducerRef)
	return formatter.FilterVehicleMonitoring(res, formatter.Filter{
		LineRef:     q.Get("lineRef"),
		VehicleMode: mode,
	}), nil
}

func (h *handlers) vehiclesJSON(w http.ResponseWriter, r *http.Request) {
	res, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(formatter.NewResponseBuilder().BuildJSON(res))
}

func (h *handlers) vehiclesXML(w http.ResponseWriter, r *http.Request) {
	res, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write(formatter.NewResponseBuilder().BuildXML(res))
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	writeError(w, http.StatusMethodNotAllowed, &QueryError{Msg: "Use POST."})
	return false
}

func (h *handlers) pause(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	paused, err := parseBool("paused", r.URL.Query().Get("paused"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p := h.sim.SetPaused(paused)
	writeJSON(w, controlResponse{OK: true, Paused: &p})
}

func (h *handlers) toggle(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := h.sim.TogglePaused()
	writeJSON(w, controlResponse{OK: true, Paused: &p})
}

func (h *handlers) interval(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	ms, err := parsePositiveInt("ms", r.URL.Query().Get("ms"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.sim.SetTickInterval(ms)
	writeJSON(w, controlResponse{OK: true, Interval: int64(ms)})
}

func (h *handlers) source(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	mode, err := resolver.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.sim.SetDataSource(mode); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, controlResponse{OK: true, Mode: string(mode)})
}

func (h *handlers) follow(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	on, err := parseBool("enabled", r.URL.Query().Get("enabled"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f := h.sim.SetFollow(on)
	writeJSON(w, controlResponse{OK: f == on, Follow: &f})
}
