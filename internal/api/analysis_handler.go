package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskrank-api/internal/api/shared"
	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
	"github.com/phrazzld/taskrank-api/internal/service"
)

// strategyParam is the query parameter selecting the scoring strategy.
const strategyParam = "strategy"

// AnalysisHandler handles prioritization HTTP requests
type AnalysisHandler struct {
	analysis        service.AnalysisService
	defaultStrategy string
	logger          *slog.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
// defaultStrategy is only used to flag the default entry in strategy listings.
func NewAnalysisHandler(
	analysis service.AnalysisService,
	defaultStrategy string,
	logger *slog.Logger,
) *AnalysisHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AnalysisHandler")
	}

	return &AnalysisHandler{
		analysis:        analysis,
		defaultStrategy: defaultStrategy,
		logger:          logger.With(slog.String("component", "analysis_handler")),
	}
}

// AnalyzeTasks handles POST /analyze requests.
// The body must be a non-empty JSON array of tasks; the result ranks them
// under the strategy named by the strategy query parameter.
func (h *AnalysisHandler) AnalyzeTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var raw json.RawMessage
	if err := shared.DecodeJSON(r, &raw); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidFormat, err)
		return
	}
	if !isJSONArray(raw) {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgExpectedList)
		return
	}

	var reqs []TaskRequest
	if err := json.Unmarshal(raw, &reqs); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, decodeErrorMessage(err), err)
		return
	}
	if len(reqs) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgEmptyTaskList)
		return
	}

	tasks := make([]domain.Task, len(reqs))
	for i := range reqs {
		if err := shared.ValidateRequest(&reqs[i]); err != nil {
			message := fmt.Sprintf("Task %d: %s", i+1, SanitizeValidationError(err))
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
			return
		}
		tasks[i] = reqs[i].toTask()
	}

	log.Debug("analyzing submitted tasks", slog.Int("task_count", len(tasks)))
	analysis, err := h.analysis.Analyze(r.Context(), tasks, r.URL.Query().Get(strategyParam))
	h.respondWithAnalysis(w, r, analysis, err)
}

// AnalyzeStoredTasks handles GET /tasks/analyze requests, ranking every
// stored task.
func (h *AnalysisHandler) AnalyzeStoredTasks(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.analysis.AnalyzeStored(r.Context(), r.URL.Query().Get(strategyParam))
	h.respondWithAnalysis(w, r, analysis, err)
}

// ListStrategies handles GET /strategies requests
func (h *AnalysisHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	profiles := priority.Strategies()
	response := make([]StrategyResponse, len(profiles))
	for i, p := range profiles {
		response[i] = StrategyResponse{
			Name:    string(p.Name),
			Weights: p.Weights,
			Default: string(p.Name) == h.defaultStrategy,
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

func (h *AnalysisHandler) respondWithAnalysis(
	w http.ResponseWriter,
	r *http.Request,
	analysis *service.Analysis,
	err error,
) {
	var cycleErr *priority.CycleError
	if errors.As(err, &cycleErr) {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("rejecting cyclic batch",
			slog.Int("cycle_count", len(cycleErr.Cycles)))
		shared.RespondWithJSON(w, r, http.StatusBadRequest, CycleErrorResponse{
			Error:   msgCircularDeps,
			Cycles:  cycleErr.Cycles,
			TraceID: shared.GetTraceID(r.Context()),
		})
		return
	}

	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, analysisToResponse(analysis))
}
