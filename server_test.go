package roundel

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lmmx/roundel/formatter"
	"github.com/lmmx/roundel/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, sim *Simulator, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewMux(sim).ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload errorPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload.Error
}

func TestHealth(t *testing.T) {
	sim := newTestSimulator(t, nil)
	require.NoError(t, sim.SetDataSource(resolver.ModeSynthetic))

	rec := serve(t, sim, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "synthetic", resp.Mode)
	assert.Equal(t, 2, resp.Counts.Total)
	assert.False(t, resp.Paused)
	assert.Equal(t, int64(16), resp.IntervalMS)
}

func TestCounts(t *testing.T) {
	sim := newTestSimulator(t, nil)
	require.NoError(t, sim.SetDataSource(resolver.ModeSynthetic))

	rec := serve(t, sim, http.MethodGet, "/api/counts")
	var resp countsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, countsResponse{Buses: 0, Trains: 2, Total: 2}, resp)
}

func TestVehiclesJSON(t *testing.T) {
	sim := newTestSimulator(t, nil)
	require.NoError(t, sim.SetDataSource(resolver.ModeSynthetic))

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 2},
		{"line match", "?lineRef=CENTRAL", 2},
		{"line miss", "?lineRef=victoria", 0},
		{"rail", "?vehicleMode=rail", 2},
		{"bus", "?vehicleMode=bus", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, sim, http.MethodGet, "/api/vehicles.json"+tt.query)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var res formatter.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			require.Len(t, res.Siri.ServiceDelivery.VehicleMonitoringDelivery, 1)
			vm := res.Siri.ServiceDelivery.VehicleMonitoringDelivery[0]
			assert.Equal(t, "synthetic", vm.Source)
			assert.Len(t, vm.VehicleActivity, tt.want)
			assert.Equal(t, ProducerRef, res.Siri.ServiceDelivery.ProducerRef)
		})
	}
}

func TestVehiclesRejectsUnknownMode(t *testing.T) {
	sim := newTestSimulator(t, nil)
	rec := serve(t, sim, http.MethodGet, "/api/vehicles.json?vehicleMode=tram")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "tram")
}

func TestVehiclesXML(t *testing.T) {
	sim := newTestSimulator(t, nil)
	require.NoError(t, sim.SetDataSource(resolver.ModeSynthetic))

	rec := serve(t, sim, http.MethodGet, "/api/vehicles.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<Siri xmlns=")
	assert.Equal(t, 2, strings.Count(body, "<VehicleActivity>"))
}

func TestControlEndpoints(t *testing.T) {
	sim := newTestSimulator(t, nil)
	require.NoError(t, sim.SetDataSource(resolver.ModeSynthetic))

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"pause needs post", http.MethodGet, "/api/control/pause?paused=true", http.StatusMethodNotAllowed},
		{"pause bad value", http.MethodPost, "/api/control/pause?paused=maybe", http.StatusBadRequest},
		{"pause", http.MethodPost, "/api/control/pause?paused=true", http.StatusOK},
		{"toggle", http.MethodPost, "/api/control/toggle", http.StatusOK},
		{"interval zero", http.MethodPost, "/api/control/interval?ms=0", http.StatusBadRequest},
		{"interval", http.MethodPost, "/api/control/interval?ms=33", http.StatusOK},
		{"source unknown", http.MethodPost, "/api/control/source?mode=ferry", http.StatusBadRequest},
		{"source", http.MethodPost, "/api/control/source?mode=static", http.StatusOK},
		{"follow missing", http.MethodPost, "/api/control/follow", http.StatusBadRequest},
		{"follow", http.MethodPost, "/api/control/follow?enabled=false", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, sim, tt.method, tt.target)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				assert.NotEmpty(t, decodeError(t, rec))
			}
		})
	}

	assert.False(t, sim.Paused(), "pause then toggle")
	assert.Equal(t, 33*time.Millisecond, sim.Interval())
	assert.Equal(t, resolver.ModeStatic, sim.Mode())
	// no static tier, so the cascade lands on synthetic
	assert.Equal(t, "synthetic", sim.Snapshot().Source)
}

func TestFollowWithoutSelectionReportsNotOK(t *testing.T) {
	sim := newTestSimulator(t, nil)
	rec := serve(t, sim, http.MethodPost, "/api/control/follow?enabled=true")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp controlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	require.NotNil(t, resp.Follow)
	assert.False(t, *resp.Follow)
}
