package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// StagingAuth enforces HTTP basic auth on requests whose Host matches
// stagingHost, keeping the staging deployment out of search engines and
// casual visitors. Production hosts pass through untouched. The middleware
// is a no-op when the host or credentials are unset.
func StagingAuth(stagingHost, username, password string) func(http.Handler) http.Handler {
	stagingHost = strings.ToLower(strings.TrimSpace(stagingHost))
	return func(next http.Handler) http.Handler {
		if stagingHost == "" || username == "" || password == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(r.Host)
			if h, _, ok := strings.Cut(host, ":"); ok {
				host = h
			}
			if !strings.Contains(host, stagingHost) {
				next.ServeHTTP(w, r)
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok || !credentialsMatch(user, pass, username, password) {
				w.Header().Set("WWW-Authenticate", `Basic realm="Staging Environment"`)
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			w.Header().Set("X-Environment", "staging")
			next.ServeHTTP(w, r)
		})
	}
}

func credentialsMatch(user, pass, wantUser, wantPass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(wantPass)) == 1
	return userOK && passOK
}
