package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/password"
)

const basicRealm = `Basic realm="Secure Area"`

// BasicAuth returns middleware that requires the static admin credential.
// pass may be a bcrypt hash.
func BasicAuth(user, pass string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			// Both comparisons always run.
			userOK := password.Equal(u, user)
			passOK := password.Verify(p, pass)
			if !ok || !userOK || !passOK {
				log.Warn().
					Str("path", r.URL.Path).
					Str("ip", getClientIP(r)).
					Bool("credentials_sent", ok).
					Msg("Admin auth rejected")
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", basicRealm)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte("Auth Required"))
}
