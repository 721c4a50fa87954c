package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"checkout-customizer-layer/internal/domain"
)

// TokenVerifier validates an embedded-app session token and returns the shop
// domain it was issued for.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// SessionTokenMiddleware authenticates admin API requests via the
// Authorization bearer token and stores the shop domain in the request
// context.
func SessionTokenMiddleware(verifier TokenVerifier, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				http.Error(w, "Authorization bearer token is required", http.StatusUnauthorized)
				return
			}

			shopDomain, err := verifier.Verify(token)
			if err != nil {
				logger.Warn().Err(err).Msg("Session token verification failed")
				http.Error(w, "Invalid session token", http.StatusUnauthorized)
				return
			}

			ctx := domain.WithShopDomain(r.Context(), shopDomain)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
