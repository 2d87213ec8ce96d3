package recoverer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vadimbarashkov/bookmarks-api/pkg/middleware"
	"github.com/vadimbarashkov/bookmarks-api/pkg/response"
)

// New returns a middleware that converts panics into 500 responses. The
// panic value is always logged in full; the response body carries it only
// when verbose is set, so production clients see a generic message.
func New(logger *slog.Logger, verbose bool) middleware.Middleware {
	const op = "middleware.recoverer.New"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(
						"panic occurred while handling request",
						slog.Group(op, slog.Any("err", rec)),
					)

					resp := response.ServerError
					if verbose {
						resp = response.Error(fmt.Sprint(rec))
					}

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(resp) //nolint:errcheck
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
