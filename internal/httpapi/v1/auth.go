package v1

import (
	"net/http"
	"strings"

	"github.com/tinoosan/booksapi/internal/ident"
)

func parseBearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	if !strings.HasPrefix(h, "Bearer ") && !strings.HasPrefix(h, "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[len("Bearer "):])
	return tok, tok != ""
}

// me resolves the member behind a valid bearer token. It checks identity
// only; no route is restricted by role.
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	tok, ok := parseBearerToken(r)
	if !ok {
		unauthorized(w)
		return
	}
	claims, err := s.tokens.Parse(tok)
	if err != nil {
		unauthorized(w)
		return
	}
	id, err := ident.Decode(claims.AdherentID)
	if err != nil {
		unauthorized(w)
		return
	}
	a, err := s.adherents.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, adherentNotFound)
		return
	}
	toJSON(w, http.StatusOK, a)
}
