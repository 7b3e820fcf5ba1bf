package auth

import (
	"strings"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/validator"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
	maxEmailLength    = 254
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims and lowercases the email so logins are case-insensitive.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	switch {
	case validator.IsEmpty(r.Email):
		errs.Add("email", "email is required")
	case len(r.Email) > maxEmailLength:
		errs.Add("email", "email must not exceed 254 characters")
	case !validator.IsValidEmail(strings.TrimSpace(r.Email)):
		errs.Add("email", "email must be a valid email address")
	}

	switch {
	case r.Password == "":
		errs.Add("password", "password is required")
	case len(r.Password) < minPasswordLength:
		errs.Add("password", "password must be at least 8 characters long")
	case len(r.Password) > maxPasswordLength:
		errs.Add("password", "password must not exceed 72 characters")
	}

	return errs.Err()
}

// RefreshTokenRequest carries the token from the body when the cookie is
// missing, e.g. for non-browser clients.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	if validator.IsEmpty(r.RefreshToken) {
		return validator.ValidationErrors{{Field: "refresh_token", Message: "refresh_token is required"}}
	}
	return nil
}

// TokenResponse is returned by login and refresh. Refresh rotates the
// refresh token, so both fields are always set.
type TokenResponse struct {
	AccessToken           string             `json:"access_token"`
	AccessTokenExpiresIn  int64              `json:"access_token_expires_in"`
	RefreshToken          string             `json:"refresh_token"`
	RefreshTokenExpiresIn int64              `json:"refresh_token_expires_in"`
	User                  *user.UserResponse `json:"user,omitempty"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
