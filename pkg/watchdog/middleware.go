package watchdog

import (
	"net/http"
)

// TouchMiddleware records request activity for watched sessions. Requests
// without a resolvable token, or for sessions not under supervision, pass
// through untouched.
func (w *Watchdog) TouchMiddleware(resolver TokenResolver) func(http.Handler) http.Handler {
	if resolver == nil {
		resolver = NewCookieResolver(DefaultCookieName)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			if token, err := resolver.Resolve(r); err == nil && w.Watching(token) {
				w.Touch(token)
			}
			next.ServeHTTP(rw, r)
		})
	}
}
