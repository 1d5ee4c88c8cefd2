package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskrank-api/internal/api/shared"
	"github.com/phrazzld/taskrank-api/internal/domain"
)

// getPathTaskID extracts a task ID from the URL path parameters.
func getPathTaskID(r *http.Request, paramName string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, paramName))
	if id == "" {
		return "", domain.ErrInvalidID
	}
	return id, nil
}

// decodeTaskRequest decodes and validates a single task body, writing a 400
// response and returning false on failure.
func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (*TaskRequest, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, decodeErrorMessage(err), err)
		return nil, false
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return nil, false
	}

	return &req, true
}

// decodeErrorMessage distinguishes malformed identifiers and null fields from
// other decode failures.
func decodeErrorMessage(err error) string {
	var nullErr *NullFieldError
	if errors.As(err, &nullErr) {
		return nullErr.Error()
	}
	if errors.Is(err, domain.ErrInvalidID) {
		return GetSafeErrorMessage(err)
	}
	return msgInvalidFormat
}

// isJSONArray reports whether raw holds a JSON array.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
