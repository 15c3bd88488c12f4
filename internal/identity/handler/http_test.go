package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"alumni-network/backend/internal/identity/domain"
	"alumni-network/backend/internal/identity/repository"
	"alumni-network/backend/internal/identity/service"
	"alumni-network/backend/internal/security"
)

type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[string]*domain.Account{}}
}

func (r *memAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *account
	r.accounts[account.UID] = &cp
	return nil
}

func (r *memAccountRepo) GetByUID(_ context.Context, uid string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[uid]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func newTestHandler(t *testing.T) (*Handler, *service.Issuer) {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider() error = %v", err)
	}
	issuer := service.NewIssuer(newMemAccountRepo(), security.NewHasher(4), tokens)
	if _, err := issuer.Register(context.Background(), "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return NewHandler(issuer), issuer
}

func TestLogin(t *testing.T) {
	h, issuer := newTestHandler(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid credentials", `{"email":"alice@example.com","password":"secret1"}`, http.StatusOK},
		{"wrong password", `{"email":"alice@example.com","password":"nope123"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"nobody@example.com","password":"secret1"}`, http.StatusUnauthorized},
		{"missing password", `{"email":"alice@example.com"}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Login(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want != http.StatusOK {
				return
			}
			var resp struct {
				IDToken string `json:"idToken"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			// The returned token is a valid identity assertion.
			identity, err := issuer.VerifyAssertion(req.Context(), resp.IDToken)
			if err != nil {
				t.Fatalf("VerifyAssertion() error = %v", err)
			}
			if identity.Email != "alice@example.com" {
				t.Errorf("identity.Email = %q, want %q", identity.Email, "alice@example.com")
			}
		})
	}
}
