package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter(svc jwt.Service, guards ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired)
	for _, g := range guards {
		r.Use(g)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func call(t *testing.T, h http.Handler, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "15m", "24h")
	h := newGuardedRouter(svc)

	access, _, err := svc.GenerateAccessToken("user-1", "owner@lumiere.salon", nil, user.RoleOwner)
	require.NoError(t, err)
	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	expired, _, err := jwt.NewJWTService("middleware-secret", "-1h", "24h").
		GenerateAccessToken("user-1", "owner@lumiere.salon", nil, user.RoleOwner)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, call(t, h, access))
	assert.Equal(t, http.StatusUnauthorized, call(t, h, ""))
	assert.Equal(t, http.StatusUnauthorized, call(t, h, refresh))
	assert.Equal(t, http.StatusUnauthorized, call(t, h, expired))
	assert.Equal(t, http.StatusUnauthorized, call(t, h, "not.a.token"))
}

func TestRoleGuards(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "15m", "24h")
	tokenFor := func(role user.Role) string {
		token, _, err := svc.GenerateAccessToken("user-"+string(role), string(role)+"@lumiere.salon", nil, role)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name  string
		guard func(http.Handler) http.Handler
		role  user.Role
		want  int
	}{
		{"owner manages payroll", RequirePermission(user.PermissionPayrollManage), user.RoleOwner, http.StatusNoContent},
		{"manager cannot finalize payroll", RequirePermission(user.PermissionPayrollManage), user.RoleManager, http.StatusForbidden},
		{"cashier records sales", RequirePermission(user.PermissionSalesManage), user.RoleCashier, http.StatusNoContent},
		{"specialist cannot see employees", RequirePermission(user.PermissionEmployeeView), user.RoleSpecialist, http.StatusForbidden},
		{"manager opens payroll page", RequirePage(user.PagePayroll), user.RoleManager, http.StatusNoContent},
		{"cashier cannot open payroll page", RequirePage(user.PagePayroll), user.RoleCashier, http.StatusForbidden},
		{"unknown role sees nothing", RequirePage(user.PageDashboard), user.Role("guest"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newGuardedRouter(svc, tt.guard)
			assert.Equal(t, tt.want, call(t, h, tokenFor(tt.role)))
		})
	}
}
