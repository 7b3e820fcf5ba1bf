package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/lumiere-salon/salon-backend-go/internal/handler/http/response"
)

// RequirePermission lets a request through when the caller's role grants
// permission.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return requireRole(func(role user.Role) (bool, string) {
		return user.HasPermission(role, permission),
			fmt.Sprintf("Insufficient permissions: required '%s'", permission)
	})
}

// RequirePage lets a request through when the caller's role may open page.
func RequirePage(page user.Page) func(http.Handler) http.Handler {
	return requireRole(func(role user.Role) (bool, string) {
		return user.CanView(role, page),
			fmt.Sprintf("Role '%s' cannot open '%s'", role, page)
	})
}

// requireRole reads the role claim and asks allow about it. Unknown or
// missing roles are denied by the permission table itself.
func requireRole(allow func(role user.Role) (bool, string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, _ := jwtauth.FromContext(r.Context())
			role, _ := claims["role"].(string)

			if allowed, reason := allow(user.Role(role)); !allowed {
				response.Forbidden(w, reason)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
