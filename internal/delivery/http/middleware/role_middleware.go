package middleware

import (
	"net/http"

	"telehealth-api/internal/domain/entity"
	"telehealth-api/pkg/response"
)

// RoleAllowed is the transport-agnostic authorization decision. Routes
// with no declared roles are open; a request without a principal is
// rejected whenever any restriction is declared; otherwise plain set
// membership decides.
func RoleAllowed(required []entity.Role, requestRole *entity.Role) bool {
	if len(required) == 0 {
		return true
	}
	if requestRole == nil {
		return false
	}
	for _, role := range required {
		if *requestRole == role {
			return true
		}
	}
	return false
}

// RequireRole creates a middleware that checks if the user has any of the
// allowed roles. Role is read from context (set by AuthMiddleware from
// JWT claims).
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var requestRole *entity.Role
			if role, ok := GetRoleFromContext(r.Context()); ok {
				requestRole = &role
			}

			if !RoleAllowed(allowedRoles, requestRole) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for coordinator-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireDoctor is a convenience middleware for doctor-only endpoints
func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDoctor)(next)
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RolePatient)(next)
}

// RequireAdminOrDoctor is a convenience middleware for admin or doctor endpoints
func RequireAdminOrDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleDoctor)(next)
}
