package v1

import (
	"net/http"

	"github.com/tinoosan/booksapi/internal/dictionary"
)

type dictionaryResponse struct {
	Items []dictionary.Entry `json:"items"`
}

// GET /dictionary/book-types
func (s *Server) getBookTypesDictionary(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, dictionaryResponse{Items: dictionary.BookTypes()})
}

// GET /dictionary/roles
func (s *Server) getRolesDictionary(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, dictionaryResponse{Items: dictionary.Roles()})
}
