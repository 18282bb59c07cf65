package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes caps request bodies at 1 MiB, ample for any query
// document plus variables.
const DefaultMaxBodyBytes int64 = 1 << 20

// MaxBytes bounds the request body; reads past the limit fail and the client
// gets 413. Apply to the routes that accept a body.
func MaxBytes(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
