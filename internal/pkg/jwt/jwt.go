package jwt

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
)

// Token kinds carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeSSE     = "sse"
)

const (
	sseTokenTTL       = 5 * time.Minute
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/v1/auth"
)

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	tokenAuth  *jwtauth.JWTAuth
	accessTTL  time.Duration
	refreshTTL time.Duration
	// durationErr is returned by the generators when a configured
	// expiration could not be parsed.
	durationErr error
	now         func() time.Time

	mu sync.Mutex
	// revoked maps a refresh token to its own expiry; entries past it are
	// dropped on the next revocation.
	revoked map[string]time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	s := &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:       time.Now,
		revoked:   make(map[string]time.Time),
	}
	var err error
	if s.accessTTL, err = time.ParseDuration(accessTokenExpirationTime); err != nil {
		s.durationErr = fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpirationTime, err)
	}
	if s.refreshTTL, err = time.ParseDuration(refreshTokenExpirationTime); err != nil && s.durationErr == nil {
		s.durationErr = fmt.Errorf("invalid refresh token expiration %q: %w", refreshTokenExpirationTime, err)
	}
	return s
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken signs the claims the middleware and handlers read:
// user_id, role and the linked employee_id (null for staff without one).
func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error) {
	if j.durationErr != nil {
		return "", 0, j.durationErr
	}
	var linked interface{}
	if employeeID != nil {
		linked = *employeeID
	}
	return j.sign(TokenTypeAccess, userID, j.accessTTL, map[string]interface{}{
		"email":       email,
		"employee_id": linked,
		"role":        string(role),
	})
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	if j.durationErr != nil {
		return "", 0, j.durationErr
	}
	return j.sign(TokenTypeRefresh, userID, j.refreshTTL, nil)
}

// GenerateSSEToken issues a short-lived token for the notification stream,
// which is opened with a query parameter instead of a header.
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	token, _, err = j.sign(TokenTypeSSE, userID, sseTokenTTL, nil)
	if err != nil {
		return "", 0, err
	}
	return token, int(sseTokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}
	if tokenType, _ := token.Get("type"); tokenType != TokenTypeSSE {
		return "", jwt.ErrInvalidJWT()
	}
	raw, _ := token.Get("user_id")
	userID, ok := raw.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return userID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	expiresAt := j.now().Add(j.refreshTTL)
	if decoded, err := j.tokenAuth.Decode(token); err == nil && !decoded.Expiration().IsZero() {
		expiresAt = decoded.Expiration()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now()
	for t, exp := range j.revoked {
		if now.After(exp) {
			delete(j.revoked, t)
		}
	}
	j.revoked[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, revoked := j.revoked[token]
	return revoked
}

func (j *JWTService) sign(tokenType, userID string, ttl time.Duration, extra map[string]interface{}) (string, int64, error) {
	expiresAt := j.now().Add(ttl).Unix()
	claims := map[string]interface{}{
		"jti":     uuid.NewString(),
		"user_id": userID,
		"type":    tokenType,
		"exp":     expiresAt,
	}
	for k, v := range extra {
		claims[k] = v
	}
	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}
	return tokenString, expiresAt, nil
}
