package watchdog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sessionguard/pkg/inactivity"
)

// StatusResponse is the JSON body returned by the status and extend
// endpoints.
type StatusResponse struct {
	Token  string            `json:"token"`
	Status inactivity.Status `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router returns the session supervision HTTP API, meant to be mounted
// under a path of the caller's choosing:
//
//	GET  /status  current supervision snapshot for the request's session
//	POST /extend  restart the session's inactivity clock
//	POST /logout  force an immediate timeout
//
// A nil resolver falls back to the default session cookie.
func (w *Watchdog) Router(resolver TokenResolver) chi.Router {
	if resolver == nil {
		resolver = NewCookieResolver(DefaultCookieName)
	}

	r := chi.NewRouter()
	r.Get("/status", w.handleStatus(resolver))
	r.Post("/extend", w.handleExtend(resolver))
	r.Post("/logout", w.handleLogout(resolver))
	return r
}

func (w *Watchdog) handleStatus(resolver TokenResolver) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		token, ok := w.resolveToken(rw, r, resolver)
		if !ok {
			return
		}

		status, err := w.Status(token)
		if err != nil {
			writeError(rw, http.StatusNotFound, err)
			return
		}

		writeJSON(rw, http.StatusOK, StatusResponse{Token: token, Status: status})
	}
}

func (w *Watchdog) handleExtend(resolver TokenResolver) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		token, ok := w.resolveToken(rw, r, resolver)
		if !ok {
			return
		}

		if err := w.ExtendSession(r.Context(), token); err != nil {
			switch {
			case errors.Is(err, ErrNotWatched):
				writeError(rw, http.StatusNotFound, err)
			default:
				writeError(rw, http.StatusInternalServerError, err)
			}
			return
		}

		status, err := w.Status(token)
		if err != nil {
			writeError(rw, http.StatusNotFound, err)
			return
		}

		writeJSON(rw, http.StatusOK, StatusResponse{Token: token, Status: status})
	}
}

func (w *Watchdog) handleLogout(resolver TokenResolver) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		token, ok := w.resolveToken(rw, r, resolver)
		if !ok {
			return
		}

		if err := w.TriggerLogout(r.Context(), token); err != nil {
			writeError(rw, http.StatusNotFound, err)
			return
		}

		rw.WriteHeader(http.StatusNoContent)
	}
}

func (w *Watchdog) resolveToken(rw http.ResponseWriter, r *http.Request, resolver TokenResolver) (string, bool) {
	token, err := resolver.Resolve(r)
	if err != nil {
		writeError(rw, http.StatusUnauthorized, ErrNoToken)
		return "", false
	}
	return token, true
}

func writeJSON(rw http.ResponseWriter, status int, body any) {
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(body)
}

func writeError(rw http.ResponseWriter, status int, err error) {
	writeJSON(rw, status, errorResponse{Error: err.Error()})
}
