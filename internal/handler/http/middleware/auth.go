package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/auth"
	"github.com/lumiere-salon/salon-backend-go/internal/handler/http/response"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token. It runs
// after jwtauth.Verifier, so refresh and stream tokens are told apart here.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		switch {
		case errors.Is(err, jwtauth.ErrExpired):
			response.Unauthorized(w, "Token expired")
			return
		case err != nil, token == nil:
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if tokenType, _ := token.Get("type"); tokenType != jwt.TokenTypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
