package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"taskboard/internal/app/service"
	"taskboard/internal/common"
	"taskboard/internal/domain/model"
)

type contextKey string

const UserCtxKey contextKey = "user"

const basicChallenge = `Basic realm="API"`

// BasicAuth authenticates every request from its Authorization header.
// Failures never reach next and are answered with 401 and a Basic challenge.
func BasicAuth(authService *service.AuthService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, "Authentication credentials were not provided.")
				return
			}

			user, err := authService.Authenticate(r.Context(), username, password)
			if err != nil {
				if errors.Is(err, common.ErrUnauthorized) {
					logger.Warn().
						Str("username", username).
						Str("path", r.URL.Path).
						Msg("rejected credentials")
					unauthorized(w, "Invalid username/password.")
					return
				}
				logger.Error().Err(err).Str("username", username).Msg("failed to authenticate")
				common.RespondWithDomainError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", basicChallenge)
	common.RespondWithError(w, http.StatusUnauthorized, message)
}

// GetUserFromContext returns the user stored by BasicAuth.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok
}
