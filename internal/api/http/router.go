package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the public, auth and admin routes.
func NewRouter(
	registrationHandler *RegistrationHandler,
	authHandler *AuthHandler,
	adminHandler *AdminHandler,
	authMiddleware *AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/registrations", registrationHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/auth/token", authHandler.ExchangeToken).Methods(http.MethodPost)

	// Admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware.RequireAdmin)
	admin.HandleFunc("/update-requests", adminHandler.ListPendingRequests).Methods(http.MethodGet)
	admin.HandleFunc("/update-requests/{id}/changes", adminHandler.GetRequestChanges).Methods(http.MethodGet)
	admin.HandleFunc("/update-requests/{id}/approve", adminHandler.ApproveRequest).Methods(http.MethodPost)
	admin.HandleFunc("/update-requests/{id}/reject", adminHandler.RejectRequest).Methods(http.MethodPost)
	admin.HandleFunc("/registrations/{id}/approve", adminHandler.ApproveNewMember).Methods(http.MethodPost)
	admin.HandleFunc("/pending-registrations/{id}/approve", adminHandler.ApprovePendingRegistration).Methods(http.MethodPost)
	admin.HandleFunc("/organizations/{id}/unapprove", adminHandler.UnapproveOrganization).Methods(http.MethodPost)
	admin.HandleFunc("/emails/test", adminHandler.SendTestEmail).Methods(http.MethodPost)
	admin.HandleFunc("/audit-log", adminHandler.ListAuditLog).Methods(http.MethodGet)

	return r
}
