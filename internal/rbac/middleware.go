package rbac

import (
	"net/http"
)

var defaultChecker = NewChecker(nil)

// Require enforces a single permission.
func Require(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" || !defaultChecker.Has(role, perm) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny enforces that the role has at least one of the permissions.
func RequireAny(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" || !defaultChecker.Any(role, perms...) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwner restricts a route to the resource owner. Admins pass via the
// wildcard permission.
func RequireOwner(isOwner func(r *http.Request) bool) func(http.Handler) http.Handler {
	return RequireOwnerOr("*", isOwner)
}

// RequireOwnerOr lets the resource owner through, or anyone holding perm.
func RequireOwnerOr(perm string, isOwner func(r *http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if isOwner(r) || defaultChecker.Has(role, perm) {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}
