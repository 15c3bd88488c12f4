// Package handler exposes the login endpoint.
package handler

import (
	"errors"
	"net/http"

	"alumni-network/backend/internal/identity/service"
	"alumni-network/backend/internal/platform/httpjson"
)

// Handler serves the credential endpoints.
type Handler struct {
	issuer *service.Issuer
}

// NewHandler constructs the credential handler.
func NewHandler(issuer *service.Issuer) *Handler {
	return &Handler{issuer: issuer}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/login: password sign-in returning a short-lived id
// token. The client posts the id token to /api/session to get the cookie.
// Wrong password, unknown email, and disabled accounts all get the same 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil || req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	idToken, err := h.issuer.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpjson.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		httpjson.Error(w, http.StatusInternalServerError, "could not sign in")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"idToken": idToken})
}
