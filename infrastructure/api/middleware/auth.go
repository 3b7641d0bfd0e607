package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/foliolabs/folio/infrastructure/api"
)

// APIKeyAuth returns middleware that requires one of the given API keys in
// the X-API-Key header or as a bearer token. An empty key list disables
// authentication.
func APIKeyAuth(keys []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-API-Key")
			if presented == "" {
				presented = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}

			for _, key := range keys {
				if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}

			WriteError(w, r, api.NewAuthenticationError("invalid or missing API key"), nil)
		})
	}
}
