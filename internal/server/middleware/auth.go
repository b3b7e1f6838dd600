package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/weightkeeper/internal/logging"
	"github.com/iudanet/weightkeeper/internal/server/handlers"
)

// AuthMiddleware создает middleware для проверки JWT токена.
// Принимает заголовок "Authorization: Bearer <jwt>" или "Authorization: token <jwt>".
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logging.FromContext(r.Context(), logger)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				handlers.SendError(w, logger, "Requires authentication", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !isTokenScheme(parts[0]) || strings.TrimSpace(parts[1]) == "" {
				log.Warn("Invalid Authorization header format")
				handlers.SendError(w, logger, "Bad credentials", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, strings.TrimSpace(parts[1]))
			if err != nil {
				log.Warn("Invalid access token", "error", err)
				handlers.SendError(w, logger, "Bad credentials", http.StatusUnauthorized)
				return
			}

			log.Debug("User authenticated", "username", claims.Username)

			next.ServeHTTP(w, r.WithContext(handlers.WithUsername(r.Context(), claims.Username)))
		})
	}
}

func isTokenScheme(scheme string) bool {
	return strings.EqualFold(scheme, "Bearer") || strings.EqualFold(scheme, "token")
}
