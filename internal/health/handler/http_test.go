package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubPinger struct{ err error }

func (s stubPinger) PingContext(context.Context) error { return s.err }

type stubPolicy struct{ err error }

func (s stubPolicy) HealthCheck(context.Context) error { return s.err }

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		policyErr  error
		wantStatus int
	}{
		{"all healthy", nil, nil, http.StatusOK},
		{"db down", errors.New("connection refused"), nil, http.StatusServiceUnavailable},
		{"policy broken", nil, errors.New("compile error"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(stubPinger{tt.dbErr}, stubPolicy{tt.policyErr})
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			h.Check(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCheck_NilDependencies(t *testing.T) {
	h := NewHandler(nil, nil)
	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
