package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"alumni-network/backend/internal/invitation/domain"
	"alumni-network/backend/internal/invitation/repository"
	"alumni-network/backend/internal/invitation/service"
	"alumni-network/backend/internal/notification"
	"alumni-network/backend/internal/server/middleware"
	sessionsvc "alumni-network/backend/internal/session/service"
)

type memInvitationRepo struct {
	mu          sync.Mutex
	invitations map[string]*domain.Invitation
}

func newMemInvitationRepo() *memInvitationRepo {
	return &memInvitationRepo{invitations: map[string]*domain.Invitation{}}
}

func (r *memInvitationRepo) Create(_ context.Context, inv *domain.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invitations[inv.Code] = &cp
	return nil
}

func (r *memInvitationRepo) GetByCode(_ context.Context, code string) (*domain.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invitations[code]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvitationRepo) LatestOpenByEmail(_ context.Context, email string) (*domain.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.Invitation
	for _, inv := range r.invitations {
		if inv.Email != email || inv.Used() {
			continue
		}
		if latest == nil || inv.SentAt.After(latest.SentAt) {
			latest = inv
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *memInvitationRepo) MarkUsed(_ context.Context, code string, usedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invitations[code]
	if !ok {
		return repository.ErrNotFound
	}
	if inv.Used() {
		return repository.ErrAlreadyUsed
	}
	t := usedAt
	inv.UsedAt = &t
	return nil
}

type stubRoles map[string]string

func (s stubRoles) RoleByUID(_ context.Context, uid string) (string, error) {
	return s[uid], nil
}

func newTestHandler() (*Handler, *service.Service) {
	repo := newMemInvitationRepo()
	svc := service.NewService(repo, notification.DevLogSender{}, "https://alumni.example.com", "root@example.com")
	roles := stubRoles{"admin-uid": "admin", "member-uid": "member"}
	return NewHandler(svc, roles, "root@example.com"), svc
}

func withPrincipal(req *http.Request, uid, email string) *http.Request {
	ctx := middleware.WithPrincipal(req.Context(), &sessionsvc.Principal{UID: uid, Email: email})
	return req.WithContext(ctx)
}

func TestIssue_AuthzMatrix(t *testing.T) {
	h, _ := newTestHandler()

	tests := []struct {
		name       string
		uid        string
		email      string
		anonymous  bool
		body       string
		wantStatus int
	}{
		{"anonymous", "", "", true, `{"email":"alice@example.com"}`, http.StatusUnauthorized},
		{"member", "member-uid", "bob@example.com", false, `{"email":"alice@example.com"}`, http.StatusForbidden},
		{"admin by role", "admin-uid", "carol@example.com", false, `{"email":"alice@example.com"}`, http.StatusCreated},
		{"admin by email", "member-uid", "root@example.com", false, `{"email":"alice@example.com"}`, http.StatusCreated},
		{"admin bad email", "admin-uid", "carol@example.com", false, `{"email":"not-an-email"}`, http.StatusBadRequest},
		{"admin empty body", "admin-uid", "carol@example.com", false, `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/invitations", strings.NewReader(tt.body))
			if !tt.anonymous {
				req = withPrincipal(req, tt.uid, tt.email)
			}
			rec := httptest.NewRecorder()
			h.Issue(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestEligibility_ByCode(t *testing.T) {
	h, svc := newTestHandler()
	ctx := context.Background()

	inv, err := svc.Issue(ctx, "alice@example.com", "admin-uid")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	check := func(t *testing.T, query string, wantEligible bool, wantEmail string) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/api/signup/eligibility?"+query, nil)
		rec := httptest.NewRecorder()
		h.Eligibility(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var resp eligibilityResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Eligible != wantEligible {
			t.Errorf("eligible = %v, want %v", resp.Eligible, wantEligible)
		}
		if resp.Email != wantEmail {
			t.Errorf("email = %q, want %q", resp.Email, wantEmail)
		}
	}

	check(t, "code="+inv.Code, true, "alice@example.com")
	check(t, "code=unknown-code", false, "")

	if err := svc.Redeem(ctx, inv.Code); err != nil {
		t.Fatalf("Redeem() error = %v", err)
	}
	// Used and unknown codes are indistinguishable.
	check(t, "code="+inv.Code, false, "")
}

func TestEligibility_ByEmail(t *testing.T) {
	h, svc := newTestHandler()

	if _, err := svc.Issue(context.Background(), "alice@example.com", "admin-uid"); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name         string
		query        string
		wantEligible bool
	}{
		{"invited email", "email=alice@example.com", true},
		{"uninvited email", "email=nobody@example.com", false},
		{"admin email bypass", "email=root@example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/signup/eligibility?"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.Eligibility(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			var resp eligibilityResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Eligible != tt.wantEligible {
				t.Errorf("eligible = %v, want %v", resp.Eligible, tt.wantEligible)
			}
		})
	}
}

func TestEligibility_MissingParams(t *testing.T) {
	h, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/signup/eligibility", nil)
	rec := httptest.NewRecorder()
	h.Eligibility(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
