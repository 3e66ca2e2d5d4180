package http

import (
	"encoding/json"
	"net/http"

	"hess-portal-backend/internal/service"
)

// RegistrationHandler serves the public, unauthenticated submission endpoint.
type RegistrationHandler struct {
	registrationSvc service.RegistrationService
}

func NewRegistrationHandler(registrationSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationSvc: registrationSvc}
}

func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input service.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid_request", Message: "malformed JSON body"})
		return
	}

	req, err := h.registrationSvc.Submit(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     req.ID,
		"status": req.Status,
	})
}
