package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T, strict bool) (*application, *mocks.MockTaskStore, *mocks.MockHealthChecker) {
	t.Helper()

	_, log := logger.NewTestLogger(t)
	taskStore := mocks.NewMockTaskStore()
	health := &mocks.MockHealthChecker{}

	cfg := &config.Config{API: config.APIConfig{StrictNotFound: strict}}
	return &application{
		config:    cfg,
		logger:    log,
		taskStore: taskStore,
		health:    health,
	}, taskStore, health
}

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_TaskLifecycle(t *testing.T) {
	app, taskStore, _ := newTestApplication(t, false)
	router := app.setupRouter()

	w := serve(t, router, http.MethodPost, "/tasks", `{"title":"Buy milk","description":null}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, "Task created successfully", created["message"])

	w = serve(t, router, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0]["title"])
	assert.Equal(t, "pending", tasks[0]["status"])

	w = serve(t, router, http.MethodPut, "/tasks/1",
		`{"title":"Buy oat milk","description":"2 litres","status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored, ok := taskStore.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Buy oat milk", stored.Title)
	assert.Equal(t, "completed", string(stored.Status))

	w = serve(t, router, http.MethodDelete, "/tasks/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	_, ok = taskStore.Get(1)
	assert.False(t, ok)
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "landing page", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "list without trailing slash", method: http.MethodGet, path: "/tasks", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "non-numeric id", method: http.MethodPut, path: "/tasks/abc", body: `{}`, wantStatus: http.StatusNotFound},
		{name: "negative id", method: http.MethodDelete, path: "/tasks/-1", wantStatus: http.StatusNotFound},
		{name: "get single task is not routed", method: http.MethodGet, path: "/tasks/1", wantStatus: http.StatusMethodNotAllowed},
		{name: "delete missing task is silent", method: http.MethodDelete, path: "/tasks/42", wantStatus: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newTestApplication(t, false)
			w := serve(t, app.setupRouter(), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestRouter_StrictNotFound(t *testing.T) {
	app, _, _ := newTestApplication(t, true)
	router := app.setupRouter()

	w := serve(t, router, http.MethodDelete, "/tasks/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Task not found")

	w = serve(t, router, http.MethodPut, "/tasks/42",
		`{"title":"x","description":null,"status":"pending"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_StoreErrorCarriesTraceID(t *testing.T) {
	app, taskStore, _ := newTestApplication(t, false)
	taskStore.Err = errors.New("connection refused")

	w := serve(t, app.setupRouter(), http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
	assert.NotEmpty(t, body["trace_id"])
}

func TestRouter_HealthReportsDatabaseFailure(t *testing.T) {
	app, _, health := newTestApplication(t, false)
	health.Err = errors.New("dial tcp: connection refused")

	w := serve(t, app.setupRouter(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, int64(1), health.Calls())
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	app, taskStore, _ := newTestApplication(t, false)
	taskStore.ListFn = func(_ context.Context) ([]domain.Task, error) {
		panic("boom")
	}

	w := serve(t, app.setupRouter(), http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
