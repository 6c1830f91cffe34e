package v1

import (
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/booksapi/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg, code string) { writeErr(w, http.StatusBadRequest, msg, code) }
func notFound(w http.ResponseWriter, msg string)         { writeErr(w, http.StatusNotFound, msg, "not_found") }
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeErr(w, http.StatusUnauthorized, "Not authenticated", "unauthorized")
}

// fail maps a service error onto a status code. notFoundMsg is the
// resource-specific 404 message. Unknown errors are logged and never echoed.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		notFound(w, notFoundMsg)
	case errors.Is(err, errs.ErrInvalidID):
		badRequest(w, err.Error(), "invalid_id")
	case errors.Is(err, errs.ErrInvalid):
		badRequest(w, err.Error(), "validation_error")
	case errors.Is(err, errs.ErrAuthFailed):
		badRequest(w, "Incorrect login or password", "auth_failed")
	default:
		s.log.Error("request failed", "req_id", chimw.GetReqID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
		writeErr(w, http.StatusInternalServerError, "Internal server error", "internal_error")
	}
}

// writeList answers a list or traversal, applying the empty-result policy.
func writeList[T any](s *Server, w http.ResponseWriter, items []T, emptyMsg string) {
	if len(items) == 0 {
		if s.opts.EmptyListNotFound {
			notFound(w, emptyMsg)
			return
		}
		items = []T{}
	}
	toJSON(w, http.StatusOK, items)
}
