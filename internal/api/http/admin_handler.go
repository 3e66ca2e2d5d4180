package http

import (
	"encoding/json"
	"net/http"

	"hess-portal-backend/internal/repository"
	"hess-portal-backend/internal/service"

	"github.com/gorilla/mux"
)

// AdminHandler serves the authenticated admin review endpoints.
type AdminHandler struct {
	approvalSvc     service.ApprovalService
	unapproveSvc    service.UnapproveService
	registrationSvc service.RegistrationService
	emailSvc        service.EmailService
	auditRepo       repository.AuditLogRepository
}

func NewAdminHandler(
	approvalSvc service.ApprovalService,
	unapproveSvc service.UnapproveService,
	registrationSvc service.RegistrationService,
	emailSvc service.EmailService,
	auditRepo repository.AuditLogRepository,
) *AdminHandler {
	return &AdminHandler{
		approvalSvc:     approvalSvc,
		unapproveSvc:    unapproveSvc,
		registrationSvc: registrationSvc,
		emailSvc:        emailSvc,
		auditRepo:       auditRepo,
	}
}

func (h *AdminHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.approvalSvc.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": reqs})
}

func (h *AdminHandler) GetRequestChanges(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]
	sections, err := h.approvalSvc.Changes(r.Context(), requestID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": sections})
}

type resolveRequest struct {
	AdminNotes string `json:"admin_notes"`
}

func (h *AdminHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, service.ActionApprove)
}

func (h *AdminHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, service.ActionReject)
}

func (h *AdminHandler) resolve(w http.ResponseWriter, r *http.Request, action service.ResolveAction) {
	requestID := mux.Vars(r)["id"]

	var body resolveRequest
	if r.Body != nil {
		// Notes are optional; an empty body is fine.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	req, err := h.approvalSvc.Resolve(r.Context(), requestID, action, AdminIDFromContext(r.Context()), body.AdminNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *AdminHandler) ApproveNewMember(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]
	orgID, err := h.registrationSvc.ApproveNewMemberRequest(r.Context(), requestID, AdminIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"organization_id": orgID})
}

func (h *AdminHandler) ApprovePendingRegistration(w http.ResponseWriter, r *http.Request) {
	pendingID := mux.Vars(r)["id"]
	orgID, err := h.registrationSvc.ApprovePendingRegistration(r.Context(), pendingID, AdminIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"organization_id": orgID})
}

func (h *AdminHandler) UnapproveOrganization(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["id"]
	summary, err := h.unapproveSvc.UnapproveOrganization(r.Context(), orgID, AdminIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type testEmailRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SendTestEmail is the one caller for which a delivery failure is a hard
// error rather than best-effort.
func (h *AdminHandler) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	var body testEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid_request", Message: "malformed JSON body"})
		return
	}

	if err := h.emailSvc.Send(r.Context(), service.EmailTypeTest, body.To, map[string]string{"message": body.Message}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AdminHandler) ListAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.auditRepo.ListRecent(r.Context(), 100)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
