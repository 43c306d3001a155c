package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/alex/dev-tools-portal/internal/domain"
	"github.com/alex/dev-tools-portal/internal/service"
	"github.com/alex/dev-tools-portal/internal/token"
	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// Auth verifies the bearer token's signature, confirms the session row still
// exists and stores the resulting principal on the request context. Deleting
// a session therefore locks out its tokens immediately, even before the
// access token's own expiry.
func Auth(codec *token.Codec, authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
			sessionID, err := uuid.Parse(claims.SessionID)
			if err != nil {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			principal, err := authService.CheckSession(r.Context(), userID, sessionID)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] session check failed: %v", err)
				http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetPrincipal(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*domain.Principal)
	return principal, ok
}
