package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/technexus/blog-server/internal/auth"
)

// Identity resolves an optional "Authorization: Bearer <token>" header to a
// stored user and attaches it to the request context. Requests without a
// valid token proceed anonymously; per-field authorization happens in the
// resolvers, so this middleware never rejects a request itself. Store
// failures during verification are logged and treated as no identity.
func Identity(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, _ := strings.CutPrefix(header, "Bearer ")

			user, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				slog.Error("token verification store failure", "error", err)
			}
			if user != nil {
				r = r.WithContext(auth.WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}
