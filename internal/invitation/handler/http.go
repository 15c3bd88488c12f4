// Package handler exposes the invitation endpoints: admin-only issuing and
// the public signup eligibility check.
package handler

import (
	"errors"
	"net/http"

	"alumni-network/backend/internal/invitation/service"
	"alumni-network/backend/internal/platform/httpjson"
	"alumni-network/backend/internal/platform/rbac"
)

// Handler serves the invitation endpoints.
type Handler struct {
	invitations *service.Service
	roles       rbac.RoleGetter
	adminEmail  string
}

// NewHandler constructs the invitation handler.
func NewHandler(invitations *service.Service, roles rbac.RoleGetter, adminEmail string) *Handler {
	return &Handler{invitations: invitations, roles: roles, adminEmail: adminEmail}
}

type issueRequest struct {
	Email string `json:"email"`
}

// Issue handles POST /api/invitations: admins invite an email address. The
// invitee gets a signup link by email. 401 without a session, 403 for
// non-admins, 400 for a bad email.
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	principal, err := rbac.RequireAdmin(r.Context(), h.roles, h.adminEmail)
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrUnauthenticated):
			httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		case errors.Is(err, rbac.ErrForbidden):
			httpjson.Error(w, http.StatusForbidden, "admin required")
		default:
			httpjson.Error(w, http.StatusInternalServerError, "could not resolve caller role")
		}
		return
	}

	var req issueRequest
	if err := httpjson.Decode(r, &req); err != nil || req.Email == "" {
		httpjson.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	if _, err := h.invitations.Issue(r.Context(), req.Email, principal.UID); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			httpjson.Error(w, http.StatusBadRequest, "invalid email address")
			return
		}
		httpjson.Error(w, http.StatusInternalServerError, "could not create invitation")
		return
	}
	httpjson.Write(w, http.StatusCreated, map[string]bool{"ok": true})
}

type eligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Email    string `json:"email,omitempty"`
}

// Eligibility handles GET /api/signup/eligibility?code= or ?email=. It never
// reveals why a code or email is ineligible, only that it is. The code
// response carries the invited email so the signup form can prefill it.
func (h *Handler) Eligibility(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	email := r.URL.Query().Get("email")

	switch {
	case code != "":
		inv, err := h.invitations.EligibilityByCode(r.Context(), code)
		if err != nil {
			if errors.Is(err, service.ErrNotEligible) {
				httpjson.Write(w, http.StatusOK, eligibilityResponse{Eligible: false})
				return
			}
			httpjson.Error(w, http.StatusInternalServerError, "could not check eligibility")
			return
		}
		httpjson.Write(w, http.StatusOK, eligibilityResponse{Eligible: true, Email: inv.Email})
	case email != "":
		_, err := h.invitations.EligibilityByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, service.ErrNotEligible) {
				httpjson.Write(w, http.StatusOK, eligibilityResponse{Eligible: false})
				return
			}
			httpjson.Error(w, http.StatusInternalServerError, "could not check eligibility")
			return
		}
		httpjson.Write(w, http.StatusOK, eligibilityResponse{Eligible: true})
	default:
		httpjson.Error(w, http.StatusBadRequest, "code or email is required")
	}
}
