// Package handler exposes the signup and profile endpoints.
package handler

import (
	"errors"
	"net/http"

	"alumni-network/backend/internal/platform/httpjson"
	"alumni-network/backend/internal/server/middleware"
	"alumni-network/backend/internal/user/domain"
	"alumni-network/backend/internal/user/service"
)

// Handler serves the signup and profile endpoints.
type Handler struct {
	members *service.Service
}

// NewHandler constructs the member handler.
func NewHandler(members *service.Service) *Handler {
	return &Handler{members: members}
}

type signupRequest struct {
	Code      string `json:"code"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ClassYear int    `json:"classYear"`
}

// Signup handles POST /api/signup: invitation-gated account creation. On
// success returns an id token the client posts to /api/session. 403 when not
// eligible, 409 when the code lost a race or the email is taken.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}

	idToken, err := h.members.CompleteSignup(r.Context(), service.SignupInput{
		Code:      req.Code,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ClassYear: req.ClassYear,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			httpjson.Error(w, http.StatusBadRequest, "invalid signup fields")
		case errors.Is(err, service.ErrNotEligible):
			httpjson.Error(w, http.StatusForbidden, "not eligible to sign up")
		case errors.Is(err, service.ErrCodeConflict):
			httpjson.Error(w, http.StatusConflict, "invitation code already redeemed")
		case errors.Is(err, service.ErrEmailTaken):
			httpjson.Error(w, http.StatusConflict, "email already registered")
		default:
			httpjson.Error(w, http.StatusInternalServerError, "could not complete signup")
		}
		return
	}
	httpjson.Write(w, http.StatusCreated, map[string]string{"idToken": idToken})
}

type profileResponse struct {
	UID                string   `json:"uid"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	Email              string   `json:"email"`
	ClassYear          int      `json:"classYear,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	PhoneNumber        string   `json:"phoneNumber,omitempty"`
	ProfilePictureURL  string   `json:"profilePictureUrl,omitempty"`
	CompanyIDs         []string `json:"companyIds"`
	TeamRoles          []string `json:"teamRoles"`
	Role               string   `json:"role"`
	EmailNotifications bool     `json:"emailNotifications"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	companyIDs := p.CompanyIDs
	if companyIDs == nil {
		companyIDs = []string{}
	}
	teamRoles := p.TeamRoles
	if teamRoles == nil {
		teamRoles = []string{}
	}
	return profileResponse{
		UID:                p.UID,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Email:              p.Email,
		ClassYear:          p.ClassYear,
		Bio:                p.Bio,
		PhoneNumber:        p.PhoneNumber,
		ProfilePictureURL:  p.ProfilePictureURL,
		CompanyIDs:         companyIDs,
		TeamRoles:          teamRoles,
		Role:               p.Role,
		EmailNotifications: p.EmailNotifications,
	}
}

// Me handles GET /api/me: the caller's own profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	if principal == nil {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	profile, err := h.members.Get(r.Context(), principal.UID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			httpjson.Error(w, http.StatusNotFound, "profile not found")
			return
		}
		httpjson.Error(w, http.StatusInternalServerError, "could not load profile")
		return
	}
	httpjson.Write(w, http.StatusOK, toProfileResponse(profile))
}

type updateRequest struct {
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	ClassYear          int      `json:"classYear"`
	Bio                string   `json:"bio"`
	PhoneNumber        string   `json:"phoneNumber"`
	ProfilePictureURL  string   `json:"profilePictureUrl"`
	CompanyIDs         []string `json:"companyIds"`
	TeamRoles          []string `json:"teamRoles"`
	EmailNotifications bool     `json:"emailNotifications"`
}

// UpdateMe handles PUT /api/me: replaces the caller's editable profile fields.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	if principal == nil {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}

	profile, err := h.members.Update(r.Context(), principal.UID, service.UpdateInput{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		ClassYear:          req.ClassYear,
		Bio:                req.Bio,
		PhoneNumber:        req.PhoneNumber,
		ProfilePictureURL:  req.ProfilePictureURL,
		CompanyIDs:         req.CompanyIDs,
		TeamRoles:          req.TeamRoles,
		EmailNotifications: req.EmailNotifications,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			httpjson.Error(w, http.StatusNotFound, "profile not found")
		case errors.Is(err, service.ErrInvalidInput):
			httpjson.Error(w, http.StatusBadRequest, "invalid profile fields")
		default:
			httpjson.Error(w, http.StatusInternalServerError, "could not update profile")
		}
		return
	}
	httpjson.Write(w, http.StatusOK, toProfileResponse(profile))
}

// List handles GET /api/members: the member directory.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.members.List(r.Context())
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "could not load directory")
		return
	}
	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	httpjson.Write(w, http.StatusOK, out)
}
