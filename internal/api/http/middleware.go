package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/vadimbarashkov/bookmarks-api/pkg/response"
)

// authenticate gates every bookmark route behind a static bearer token. A
// missing header, a non-Bearer scheme or a mismatched token all terminate the
// request with 401; nothing downstream runs.
func authenticate(apiToken string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(apiToken)) != 1 {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Unauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
