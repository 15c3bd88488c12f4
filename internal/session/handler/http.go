// Package handler exposes the session endpoints: POST /api/session exchanges
// an id token for the session cookie, DELETE /api/session clears it.
package handler

import (
	"errors"
	"net/http"

	"alumni-network/backend/internal/platform/httpjson"
	"alumni-network/backend/internal/session/service"
)

// CookieName is the session cookie. Its value is a signed session token; the
// access guard checks only its presence.
const CookieName = "__session"

// Handler serves the session endpoints.
type Handler struct {
	gateway    *service.Gateway
	production bool
}

// NewHandler constructs the session handler. production controls the Secure
// cookie attribute.
func NewHandler(gateway *service.Gateway, production bool) *Handler {
	return &Handler{gateway: gateway, production: production}
}

type createRequest struct {
	IDToken string `json:"idToken"`
}

// Create handles POST /api/session: exchanges an id token for a session
// cookie. Responds 401 for any invalid assertion.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil || req.IDToken == "" {
		httpjson.Error(w, http.StatusBadRequest, "idToken is required")
		return
	}

	token, err := h.gateway.Mint(r.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			httpjson.Error(w, http.StatusUnauthorized, "invalid id token")
			return
		}
		httpjson.Error(w, http.StatusInternalServerError, "could not create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		MaxAge:   h.gateway.CookieMaxAge(),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}

// Destroy handles DELETE /api/session: clears the cookie. Always succeeds,
// even without an existing session.
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
