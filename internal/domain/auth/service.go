package auth

import (
	"context"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// RefreshToken exchanges a refresh token for a new pair and revokes the old one.
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	// SSEToken issues a short-lived token for the notification stream.
	SSEToken(ctx context.Context, userID string) (SSETokenResponse, error)

	// Me returns the caller's profile with the pages and permissions of its role.
	Me(ctx context.Context, userID string) (user.UserResponse, error)
	Pages(ctx context.Context, userID string) (user.PagesResponse, error)
}
