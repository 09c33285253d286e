package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sectool/internal/domain"
	logpkg "github.com/kailas-cloud/sectool/internal/logger"
)

const bearerPrefix = "Bearer "

// Unauthenticated routes: health checks and scraping.
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware accepts requests whose bearer token equals one of keys.
// Empty credentials are ignored; with none left the middleware is a no-op.
func BearerAuthMiddleware(keys []domain.Credential) func(http.Handler) http.Handler {
	accepted := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if !k.Empty() {
			accepted = append(accepted, []byte(k.Reveal()))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(accepted) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, reason := bearerToken(r.Header.Get("Authorization"))
			if reason == "" && !matchAny(accepted, token) {
				reason = "invalid api key"
			}
			if reason != "" {
				logpkg.FromContext(r.Context()).Info("Request rejected",
					zap.String("reason", reason),
					zap.String("path", r.URL.Path),
					zap.Object("credential", domain.NewCredential(token)),
				)
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an Authorization header value.
// A non-empty reason means the header is unusable.
func bearerToken(header string) (token, reason string) {
	switch {
	case header == "":
		return "", "missing authorization header"
	case !strings.HasPrefix(header, bearerPrefix):
		return "", "authorization header must use Bearer scheme"
	}
	return header[len(bearerPrefix):], ""
}

// matchAny compares token against every key without short-circuiting.
func matchAny(keys [][]byte, token string) bool {
	t := []byte(token)
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, t)
	}
	return found == 1
}
