package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	identitysvc "alumni-network/backend/internal/identity/service"
	sessionhandler "alumni-network/backend/internal/session/handler"
	sessionsvc "alumni-network/backend/internal/session/service"
)

type stubIssuer struct {
	validToken string
	identity   identitysvc.Identity
}

func (s *stubIssuer) MintSessionToken(context.Context, string) (string, time.Time, error) {
	return s.validToken, time.Now().Add(time.Hour), nil
}

func (s *stubIssuer) VerifySessionToken(_ context.Context, token string) (*identitysvc.Identity, error) {
	if token != s.validToken {
		return nil, errors.New("invalid session token")
	}
	id := s.identity
	return &id, nil
}

func (s *stubIssuer) SessionTTL() time.Duration { return 120 * time.Hour }

func TestRequireSession(t *testing.T) {
	gateway := sessionsvc.NewGateway(&stubIssuer{
		validToken: "good-token",
		identity:   identitysvc.Identity{UID: "uid-1", Email: "alice@example.com"},
	})

	var gotPrincipal *sessionsvc.Principal
	handler := RequireSession(gateway)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
	}{
		{"no cookie", nil, http.StatusUnauthorized},
		{"empty cookie", &http.Cookie{Name: sessionhandler.CookieName, Value: ""}, http.StatusUnauthorized},
		{"invalid cookie", &http.Cookie{Name: sessionhandler.CookieName, Value: "bad"}, http.StatusUnauthorized},
		{"valid cookie", &http.Cookie{Name: sessionhandler.CookieName, Value: "good-token"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPrincipal = nil
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if gotPrincipal == nil || gotPrincipal.UID != "uid-1" {
					t.Errorf("principal = %+v, want uid-1", gotPrincipal)
				}
			} else if gotPrincipal != nil {
				t.Error("handler ran despite rejected session")
			}
		})
	}
}
