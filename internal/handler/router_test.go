package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/todo-api/backend/internal/config"
	"github.com/zhouzirui/todo-api/backend/internal/model/todo"
)

func newTestRouter(t *testing.T, metricsEnabled bool) http.Handler {
	t.Helper()
	todos, err := todo.LoadEmbedded()
	require.NoError(t, err)
	return NewRouter(
		todo.NewMemoryStore(todos),
		config.ServerConfig{Addr: ":0", AllowedOrigin: "*"},
		config.MetricsConfig{Enabled: metricsEnabled},
	)
}

func TestRouterServesTodosUnderAPI(t *testing.T) {
	r := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/todos?owner=Fry&category=groceries", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header().Get("Content-Type"))

	var todos []todo.Todo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&todos))
	assert.Len(t, todos, 17)
}

func TestRouterAnswersPreflight(t *testing.T) {
	r := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/todos/58895985a22c04e761776d54", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Less(t, resp.Code, 300)
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Body.String())
}

func TestRouterNotFoundMessage(t *testing.T) {
	r := newTestRouter(t, false)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/todos/nope", nil))

	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "No todo with id nope was found.")
}

func TestRouterHealth(t *testing.T) {
	r := newTestRouter(t, false)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	var payload struct {
		Status string `json:"status"`
		Todos  int    `json:"todos"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, 300, payload.Todos)
}

func TestRouterMetricsToggle(t *testing.T) {
	resp := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	r := newTestRouter(t, true)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/todos?limit=1", nil))

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.Contains(resp.Body.String(), `todo_api_http_requests_total{method="GET",route="/api/todos",status="200"}`))
}
