package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"telehealth-api/internal/domain/entity"
)

func TestRoleAllowed_Membership(t *testing.T) {
	// Every single-role restriction admits exactly that role.
	for _, required := range entity.AllRoles {
		for _, requesting := range entity.AllRoles {
			role := requesting
			got := RoleAllowed([]entity.Role{required}, &role)
			want := required == requesting
			if got != want {
				t.Errorf("RoleAllowed([%s], %s) = %v, want %v", required, requesting, got, want)
			}
		}
	}
}

func TestRoleAllowed_MultiRoleRoute(t *testing.T) {
	required := []entity.Role{entity.RoleDoctor, entity.RoleAdmin}

	doctor := entity.RoleDoctor
	if !RoleAllowed(required, &doctor) {
		t.Error("doctor should pass a [DOCTOR, ADMIN] route")
	}
	patient := entity.RolePatient
	if RoleAllowed(required, &patient) {
		t.Error("patient must not pass a [DOCTOR, ADMIN] route")
	}
}

func TestRoleAllowed_OpenWhenUnrestricted(t *testing.T) {
	patient := entity.RolePatient
	if !RoleAllowed(nil, &patient) {
		t.Error("nil restriction should be open")
	}
	if !RoleAllowed([]entity.Role{}, &patient) {
		t.Error("empty restriction should be open")
	}
	// Open even without a principal.
	if !RoleAllowed(nil, nil) {
		t.Error("unrestricted route should admit anonymous requests")
	}
}

func TestRoleAllowed_NoPrincipal(t *testing.T) {
	for _, required := range entity.AllRoles {
		if RoleAllowed([]entity.Role{required}, nil) {
			t.Errorf("missing principal must be rejected for [%s]", required)
		}
	}
}

func TestRequireRole_HTTP(t *testing.T) {
	handler := RequireRole(entity.RoleLab)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Request carrying the LAB role passes.
	req := httptest.NewRequest(http.MethodGet, "/lab/orders", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, entity.RoleLab))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for LAB, got %d", rec.Code)
	}

	// Wrong role is rejected with 403.
	req = httptest.NewRequest(http.MethodGet, "/lab/orders", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, entity.RoleDelivery))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for DELIVERY, got %d", rec.Code)
	}

	// Missing principal is rejected.
	req = httptest.NewRequest(http.MethodGet, "/lab/orders", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 without principal, got %d", rec.Code)
	}
}
