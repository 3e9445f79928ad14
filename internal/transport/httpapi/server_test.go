package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sagsin-net/heuristic/facade"
	"github.com/sagsin-net/heuristic/internal/transport/httpapi"
)

func newTestServer(t *testing.T) (*httptest.Server, *facade.Facade) {
	t.Helper()

	f := facade.New(50, 0.3, 20, facade.NewMetrics(), nil)
	srv := httpapi.NewServer(f, facade.NewMetrics(), nil)

	return httptest.NewServer(srv.Router()), f
}

func TestHandleHealth_ReturnsOK(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleApplySnapshot_AcceptsValidSnapshot(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	body := []byte(`{
		"timestamp": "2026-01-01T00:00:00Z",
		"nodes": [{"id":"A"}, {"id":"B"}],
		"links": [{"src":"A","dst":"B","available":true,"delay_ms":5,"bandwidth_mbps":100}]
	}`)

	resp, err := http.Post(ts.URL+"/v1/snapshot", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, true, out["success"])
}

func TestHandleApplySnapshot_RejectsMalformedTimestamp(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	body := []byte(`{"timestamp": "not-a-timestamp"}`)

	resp, err := http.Post(ts.URL+"/v1/snapshot", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandleRequestRoute_FindsRouteAfterSnapshot(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	snapshot := []byte(`{
		"timestamp": "2026-01-01T00:00:00Z",
		"nodes": [{"id":"A"}, {"id":"B"}],
		"links": [{"src":"A","dst":"B","available":true,"delay_ms":5,"bandwidth_mbps":100}]
	}`)
	resp, err := http.Post(ts.URL+"/v1/snapshot", "application/json", bytes.NewReader(snapshot))
	require.NoError(t, err)
	resp.Body.Close()

	routeReq := []byte(`{"source_node_id":"A","destination_node_id":"B","algorithm":"dijkstra"}`)
	resp, err = http.Post(ts.URL+"/v1/routes", "application/json", bytes.NewReader(routeReq))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, true, out["success"])
}

func TestHandleStats_ReportsTopology(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	snapshot := []byte(`{
		"timestamp": "2026-01-01T00:00:00Z",
		"nodes": [{"id":"A"}, {"id":"B"}],
		"links": [{"src":"A","dst":"B","available":true,"delay_ms":5,"bandwidth_mbps":100}]
	}`)
	resp, err := http.Post(ts.URL+"/v1/snapshot", "application/json", bytes.NewReader(snapshot))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/v1/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleMetrics_ServesPrometheusFormat(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
