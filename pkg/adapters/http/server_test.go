package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arborhttp "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/runner"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	source, err := memory.NewFromSpecs(
		domain.FlowSpec{
			ID:    "greet",
			Title: "Greeting",
			Nodes: []domain.NodeSpec{
				{ID: "hello", Task: "static", With: map[string]any{"values": map[string]any{"msg": "hi"}}},
				{ID: "reply", Task: "static", DependsOn: []string{"hello"}},
			},
		},
		domain.FlowSpec{
			ID: "broken",
			Nodes: []domain.NodeSpec{
				{ID: "a", Task: "static", DependsOn: []string{"b"}},
				{ID: "b", Task: "static", DependsOn: []string{"a"}},
			},
		},
	)
	require.NoError(t, err)

	return arborhttp.NewHandler(runner.New(source))
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestStartRun(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/runs", arborhttp.StartRunRequest{Flow: "greet"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var record domain.RunRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&record))
	assert.Equal(t, domain.RunCompleted, record.Status)
	assert.Equal(t, "greet", record.Flow)
	assert.Contains(t, record.Results, "hello")

	// The run is now retrievable by id.
	rec = doJSON(t, handler, http.MethodGet, "/runs/"+record.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStartRunUnknownFlow(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/runs", arborhttp.StartRunRequest{Flow: "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartRunInvalidBody(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/runs", arborhttp.StartRunRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartRunCyclicFlow(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/runs", arborhttp.StartRunRequest{Flow: "broken"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "cycle")
}

func TestGetRunNotFound(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/runs/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFlows(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/flows", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string][]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"broken", "greet"}, resp["flows"])
}

func TestGetFlow(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/flows/greet", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var spec domain.FlowSpec
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&spec))
	assert.Equal(t, "Greeting", spec.Title)
	assert.Len(t, spec.Nodes, 2)

	rec = doJSON(t, handler, http.MethodGet, "/flows/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFlowGraph(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/flows/greet/graph", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "graph TD")
	assert.Contains(t, rec.Body.String(), "hello --> reply")

	// A flow that compiles but fails graph validation is unprocessable.
	rec = doJSON(t, handler, http.MethodGet, "/flows/broken/graph", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")

	rec = doJSON(t, handler, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/runs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
