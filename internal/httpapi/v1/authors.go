package v1

import (
	"net/http"

	"github.com/tinoosan/booksapi/internal/library"
	"github.com/tinoosan/booksapi/internal/service/author"
)

const authorNotFound = "Author not found"

func (s *Server) listAuthors(w http.ResponseWriter, r *http.Request) {
	out, err := s.authors.List(r.Context(), fromCtx[author.ListQuery](r, ctxKeyQuery))
	if err != nil {
		s.fail(w, r, err, authorNotFound)
		return
	}
	writeList(s, w, out, "No authors found")
}

func (s *Server) getAuthor(w http.ResponseWriter, r *http.Request) {
	a, err := s.authors.Get(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err, authorNotFound)
		return
	}
	toJSON(w, http.StatusOK, a)
}

func (s *Server) postAuthor(w http.ResponseWriter, r *http.Request) {
	a, err := s.authors.Create(r.Context(), fromCtx[library.Author](r, ctxKeyBody))
	if err != nil {
		s.fail(w, r, err, authorNotFound)
		return
	}
	toJSON(w, http.StatusCreated, a)
}

func (s *Server) putAuthor(w http.ResponseWriter, r *http.Request) {
	a, err := s.authors.Update(r.Context(), pathID(r), fromCtx[library.Author](r, ctxKeyBody))
	if err != nil {
		s.fail(w, r, err, authorNotFound)
		return
	}
	toJSON(w, http.StatusOK, a)
}

func (s *Server) deleteAuthor(w http.ResponseWriter, r *http.Request) {
	if err := s.authors.Delete(r.Context(), pathID(r)); err != nil {
		s.fail(w, r, err, authorNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getAuthorBooks(w http.ResponseWriter, r *http.Request) {
	out, err := s.authors.Books(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err, authorNotFound)
		return
	}
	writeList(s, w, out, "No books found for this author")
}
