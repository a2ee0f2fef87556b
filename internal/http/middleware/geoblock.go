package middleware

import (
	"net/http"
	"strings"

	"github.com/cleanvent/leadrelay/pkg/logging"
)

// Country headers set by the CDN edge, in preference order.
var geoCountryHeaders = []string{"X-Vercel-IP-Country", "CloudFront-Viewer-Country", "CF-IPCountry"}

// GeoBlock restricts traffic to an allowlist of ISO country codes using the
// CDN's geo header, redirecting blocked visitors to blockedPath. Requests
// for blockedPath itself always pass so the block page stays reachable.
// An empty allowlist disables the middleware.
func GeoBlock(allowedCountries []string, blockedPath string, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	allow := map[string]struct{}{}
	for _, c := range allowedCountries {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			allow[c] = struct{}{}
		}
	}
	if blockedPath == "" {
		blockedPath = "/blocked.html"
	}

	return func(next http.Handler) http.Handler {
		if len(allow) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == blockedPath {
				next.ServeHTTP(w, r)
				return
			}

			country := requestCountry(r)
			if _, ok := allow[country]; !ok {
				logger.Info("blocked request by geo", "country", country, "remote_ip", r.RemoteAddr)
				http.Redirect(w, r, blockedPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requestCountry returns the uppercase country code from the first geo
// header present, or "UNKNOWN". Unknown origins are blocked, not allowed.
func requestCountry(r *http.Request) string {
	for _, h := range geoCountryHeaders {
		if v := strings.ToUpper(strings.TrimSpace(r.Header.Get(h))); v != "" {
			return v
		}
	}
	return "UNKNOWN"
}
