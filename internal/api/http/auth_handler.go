package http

import (
	"encoding/json"
	"net/http"

	"hess-portal-backend/internal/security"
	"hess-portal-backend/internal/service"
)

// AuthHandler exchanges an identity-provider ID token for a portal access
// token carrying the admin claim.
type AuthHandler struct {
	identity service.IdentityService
	tokens   security.TokenManager
}

func NewAuthHandler(identity service.IdentityService, tokens security.TokenManager) *AuthHandler {
	return &AuthHandler{identity: identity, tokens: tokens}
}

type tokenRequest struct {
	IDToken string `json:"id_token"`
}

func (h *AuthHandler) ExchangeToken(w http.ResponseWriter, r *http.Request) {
	var body tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.IDToken == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid_request", Message: "id_token is required"})
		return
	}

	claims, err := h.identity.VerifyIDToken(r.Context(), body.IDToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "unauthorized", Message: "invalid identity token"})
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(claims.UID, claims.Email, claims.Admin)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"access_token": accessToken})
}
