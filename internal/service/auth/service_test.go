package auth

import (
	"context"
	"testing"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/auth"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/jwt"
	"github.com/lumiere-salon/salon-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

func newTestAuthService(t *testing.T) (auth.AuthService, user.UserRepository) {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	svc := NewAuthService(users, jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp))
	return svc, users
}

func createTestUser(t *testing.T, users user.UserRepository, email string, role user.Role, active bool) user.User {
	t.Helper()
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	u, err := users.Create(context.Background(), user.User{
		Email:        email,
		Name:         "Test",
		PasswordHash: &hash,
		Role:         role,
		IsActive:     active,
	})
	require.NoError(t, err)
	return u
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuthService(t)
	createTestUser(t, users, "owner@salon.test", user.RoleOwner, true)

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "owner@salon.test", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())
	require.NotNil(t, resp.User)
	assert.Equal(t, "owner", resp.User.Role)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	svc, users := newTestAuthService(t)
	createTestUser(t, users, "manager@salon.test", user.RoleManager, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "  Manager@Salon.TEST ", Password: "password123"})
	assert.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuthService(t)
	createTestUser(t, users, "owner@salon.test", user.RoleOwner, true)

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "owner@salon.test", Password: "wrongpassword"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ghost@salon.test", Password: "password123"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_Inactive(t *testing.T) {
	svc, users := newTestAuthService(t)
	createTestUser(t, users, "former@salon.test", user.RoleCashier, false)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "former@salon.test", Password: "password123"})

	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestLogin_ValidationError(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email", Password: "short"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuthService(t)
	createTestUser(t, users, "manager@salon.test", user.RoleManager, true)

	tokens, err := svc.Login(ctx, auth.LoginRequest{Email: "manager@salon.test", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	require.NotEmpty(t, refreshed.RefreshToken)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is rotated out
	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)

	// An access token is not a refresh token
	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuthService(t)
	createTestUser(t, users, "cashier@salon.test", user.RoleCashier, true)

	tokens, err := svc.Login(ctx, auth.LoginRequest{Email: "cashier@salon.test", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))
	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken), "logout is idempotent")

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestSSEToken(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuthService(t)
	owner := createTestUser(t, users, "owner@salon.test", user.RoleOwner, true)

	resp, err := svc.SSEToken(ctx, owner.ID)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 300, resp.ExpiresIn)

	_, err = svc.SSEToken(ctx, "missing")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestMeAndPages(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuthService(t)
	cashier := createTestUser(t, users, "cashier@salon.test", user.RoleCashier, true)
	inactive := createTestUser(t, users, "old@salon.test", user.RoleManager, false)

	me, err := svc.Me(ctx, cashier.ID)
	require.NoError(t, err)
	assert.Equal(t, "cashier", me.Role)
	assert.Contains(t, me.Permissions, string(user.PermissionSalesManage))
	assert.NotContains(t, me.Pages, user.PagePayroll)

	pages, err := svc.Pages(ctx, cashier.ID)
	require.NoError(t, err)
	assert.Equal(t, user.VisiblePages(user.RoleCashier), pages.Pages)

	_, err = svc.Me(ctx, "missing")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)

	_, err = svc.Pages(ctx, inactive.ID)
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}
