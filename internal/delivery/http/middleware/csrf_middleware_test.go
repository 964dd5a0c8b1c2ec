package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAllowRequest(t *testing.T) {
	cases := []struct {
		name      string
		bearer    bool
		header    bool
		allowed   bool
	}{
		{"bearer without header", true, false, true},
		{"bearer with header", true, true, true},
		{"cookie client with header", false, true, true},
		{"cookie client without header", false, false, false},
	}

	for _, tc := range cases {
		if got := AllowRequest(tc.bearer, tc.header); got != tc.allowed {
			t.Errorf("%s: AllowRequest(%v, %v) = %v, want %v", tc.name, tc.bearer, tc.header, got, tc.allowed)
		}
	}
}

func TestCSRFMiddleware_Handle(t *testing.T) {
	m := NewCSRFMiddleware()
	handler := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Bearer clients are exempt.
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("bearer request should pass, got %d", rec.Code)
	}

	// Custom header satisfies the guard.
	req = httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(CSRFHeaderName, "XMLHttpRequest")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("request with custom header should pass, got %d", rec.Code)
	}

	// Neither: rejected as Forbidden.
	req = httptest.NewRequest(http.MethodPost, "/graphql", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("bare request should be forbidden, got %d", rec.Code)
	}

	// Basic auth is not a bearer token and does not bypass the guard.
	req = httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("basic auth request without header should be forbidden, got %d", rec.Code)
	}
}
