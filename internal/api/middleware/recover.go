package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"taskboard/internal/common"
)

// JSONRecoverer turns a panic in an API handler into a JSON 500 body
// instead of the bare response chi's Recoverer would write.
func JSONRecoverer(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					// Let net/http abort the connection as intended.
					panic(rvr)
				}

				logger.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", rvr).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")

				common.RespondWithErrorDetails(w, http.StatusInternalServerError,
					"Internal server error", fmt.Sprint(rvr))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
