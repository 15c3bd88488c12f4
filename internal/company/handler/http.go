// Package handler exposes the company endpoints.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"alumni-network/backend/internal/company/domain"
	"alumni-network/backend/internal/company/repository"
	"alumni-network/backend/internal/platform/httpjson"
	"alumni-network/backend/internal/platform/rbac"
)

// Handler serves the company endpoints. Listing is open to any member;
// creation is admin-only.
type Handler struct {
	companies  repository.CompanyRepository
	roles      rbac.RoleGetter
	adminEmail string
}

// NewHandler constructs the company handler.
func NewHandler(companies repository.CompanyRepository, roles rbac.RoleGetter, adminEmail string) *Handler {
	return &Handler{companies: companies, roles: roles, adminEmail: adminEmail}
}

type companyResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// List handles GET /api/companies.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companies.List(r.Context())
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "could not load companies")
		return
	}
	out := make([]companyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, companyResponse{ID: c.ID, Name: c.Name, LogoURL: c.LogoURL})
	}
	httpjson.Write(w, http.StatusOK, out)
}

type createRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

// Create handles POST /api/companies: admin-only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := rbac.RequireAdmin(r.Context(), h.roles, h.adminEmail); err != nil {
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

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil || strings.TrimSpace(req.Name) == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	company := &domain.Company{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(req.Name),
		LogoURL: req.LogoURL,
	}
	if err := h.companies.Create(r.Context(), company); err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "could not create company")
		return
	}
	httpjson.Write(w, http.StatusCreated, companyResponse{ID: company.ID, Name: company.Name, LogoURL: company.LogoURL})
}
