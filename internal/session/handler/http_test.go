package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	identitydomain "alumni-network/backend/internal/identity/domain"
	identityrepo "alumni-network/backend/internal/identity/repository"
	identitysvc "alumni-network/backend/internal/identity/service"
	"alumni-network/backend/internal/security"
	"alumni-network/backend/internal/session/service"
)

type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*identitydomain.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[string]*identitydomain.Account{}}
}

func (r *memAccountRepo) Create(_ context.Context, account *identitydomain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return identityrepo.ErrDuplicateEmail
		}
	}
	cp := *account
	r.accounts[account.UID] = &cp
	return nil
}

func (r *memAccountRepo) GetByUID(_ context.Context, uid string) (*identitydomain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[uid]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*identitydomain.Account, error) {
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

func newTestGateway(t *testing.T) (*service.Gateway, *identitysvc.Issuer, string) {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider() error = %v", err)
	}
	issuer := identitysvc.NewIssuer(newMemAccountRepo(), security.NewHasher(4), tokens)
	if _, err := issuer.Register(context.Background(), "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	idToken, err := issuer.SignIn(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	return service.NewGateway(issuer), issuer, idToken
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("no __session cookie in response")
	return nil
}

func TestCreate_SetsCookie(t *testing.T) {
	gateway, _, idToken := newTestGateway(t)
	h := NewHandler(gateway, false)

	req := httptest.NewRequest(http.MethodPost, "/api/session",
		strings.NewReader(`{"idToken":"`+idToken+`"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	cookie := sessionCookie(t, rec.Result())
	if cookie.Value == "" {
		t.Error("cookie value is empty")
	}
	if !cookie.HttpOnly {
		t.Error("cookie is not HttpOnly")
	}
	if cookie.Secure {
		t.Error("cookie is Secure outside production")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie SameSite = %v, want Lax", cookie.SameSite)
	}
	if cookie.Path != "/" {
		t.Errorf("cookie Path = %q, want %q", cookie.Path, "/")
	}
	if want := int(120 * 60 * 60); cookie.MaxAge != want {
		t.Errorf("cookie MaxAge = %d, want %d", cookie.MaxAge, want)
	}

	// The minted cookie round-trips through Verify.
	principal, err := gateway.Verify(req.Context(), cookie.Value)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if principal.Email != "alice@example.com" {
		t.Errorf("principal.Email = %q, want %q", principal.Email, "alice@example.com")
	}
}

func TestCreate_SecureInProduction(t *testing.T) {
	gateway, _, idToken := newTestGateway(t)
	h := NewHandler(gateway, true)

	req := httptest.NewRequest(http.MethodPost, "/api/session",
		strings.NewReader(`{"idToken":"`+idToken+`"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !sessionCookie(t, rec.Result()).Secure {
		t.Error("cookie is not Secure in production")
	}
}

func TestCreate_InvalidToken(t *testing.T) {
	gateway, _, _ := newTestGateway(t)
	h := NewHandler(gateway, false)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"garbage token", `{"idToken":"garbage"}`, http.StatusUnauthorized},
		{"missing token", `{}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDestroy_ClearsCookie(t *testing.T) {
	gateway, _, _ := newTestGateway(t)
	h := NewHandler(gateway, false)

	req := httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	rec := httptest.NewRecorder()
	h.Destroy(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	cookie := sessionCookie(t, rec.Result())
	if cookie.MaxAge != -1 {
		t.Errorf("cookie MaxAge = %d, want -1", cookie.MaxAge)
	}
	if cookie.Value != "" {
		t.Errorf("cookie value = %q, want empty", cookie.Value)
	}
}

// Destroy succeeds without a session cookie on the request.
func TestDestroy_NoExistingSession(t *testing.T) {
	gateway, _, _ := newTestGateway(t)
	h := NewHandler(gateway, false)

	req := httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	rec := httptest.NewRecorder()
	h.Destroy(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
