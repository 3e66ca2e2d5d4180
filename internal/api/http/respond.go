package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"hess-portal-backend/internal/logger"
	"hess-portal-backend/internal/service"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Step    string `json:"step,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps service errors to HTTP statuses and stable error codes so
// the UI can tell retryable failures from terminal ones.
func writeError(w http.ResponseWriter, err error) {
	var cascadeErr *service.CascadeError
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "not_found", Message: err.Error()})
	case errors.Is(err, service.ErrAlreadyResolved):
		writeJSON(w, http.StatusConflict, errorResponse{Code: "already_resolved", Message: err.Error()})
	case errors.Is(err, service.ErrMissingAdminIdentity):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "missing_admin_identity", Message: err.Error()})
	case errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrInvalidRecipient),
		errors.Is(err, service.ErrInvalidSubmission):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid_request", Message: err.Error()})
	case errors.Is(err, service.ErrNoProfileFound):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Code: "no_profile_found", Message: err.Error()})
	case errors.Is(err, service.ErrSnapshotInsertFailed):
		writeJSON(w, http.StatusBadGateway, errorResponse{Code: "snapshot_insert_failed", Message: err.Error()})
	case errors.As(err, &cascadeErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{Code: "cascade_partial_failure", Message: err.Error(), Step: cascadeErr.Step})
	default:
		logger.Error("Unhandled request error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "internal", Message: "internal server error"})
	}
}
