package middleware

import (
	"crypto/subtle"
	"net/http"
)

// OpsKey gates the operational endpoints behind a shared key passed in the
// X-Ops-Key header. When no key is configured the endpoints are unavailable
// rather than open.
func OpsKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				writeJSONError(w, http.StatusServiceUnavailable, "ops endpoints not configured")
				return
			}
			got := r.Header.Get("X-Ops-Key")
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				writeJSONError(w, http.StatusUnauthorized, "invalid ops key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
