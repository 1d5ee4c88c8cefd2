package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskrank-api/internal/config"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
	"github.com/phrazzld/taskrank-api/internal/platform/memory"
	"github.com/phrazzld/taskrank-api/internal/service"
	"github.com/stretchr/testify/require"
)

// testDay is the fixed "today" for every handler test.
var testDay = time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)

// newTestRouter wires the handlers over a fresh in-memory store.
func newTestRouter(t *testing.T, maxBatch int) http.Handler {
	t.Helper()

	log, _ := logger.NewTestLogger()
	clock := func() time.Time { return testDay }
	tasks := memory.NewTaskStore(log)

	taskService, err := service.NewTaskService(tasks, clock, log)
	require.NoError(t, err)

	analysisService, err := service.NewAnalysisService(
		priority.NewEngine(priority.WithClock(clock)),
		tasks,
		config.ScoringConfig{DefaultStrategy: "smart_balance", MaxBatchSize: maxBatch, Workers: 2},
		log,
	)
	require.NoError(t, err)

	taskHandler := NewTaskHandler(taskService, log)
	analysisHandler := NewAnalysisHandler(analysisService, "smart_balance", log)

	r := chi.NewRouter()
	r.Get("/tasks", taskHandler.ListTasks)
	r.Post("/tasks", taskHandler.CreateTask)
	r.Get("/tasks/analyze", analysisHandler.AnalyzeStoredTasks)
	r.Get("/tasks/{id}", taskHandler.GetTask)
	r.Put("/tasks/{id}", taskHandler.UpdateTask)
	r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	r.Post("/analyze", analysisHandler.AnalyzeTasks)
	r.Get("/strategies", analysisHandler.ListStrategies)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
