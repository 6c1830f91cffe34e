package v1

import (
	"net/http"

	"github.com/tinoosan/booksapi/internal/library"
	"github.com/tinoosan/booksapi/internal/service/book"
)

const bookNotFound = "Book not found"

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	out, err := s.books.List(r.Context(), fromCtx[book.ListQuery](r, ctxKeyQuery))
	if err != nil {
		s.fail(w, r, err, bookNotFound)
		return
	}
	writeList(s, w, out, "No books found")
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	b, err := s.books.Get(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err, bookNotFound)
		return
	}
	toJSON(w, http.StatusOK, b)
}

func (s *Server) postBook(w http.ResponseWriter, r *http.Request) {
	b, err := s.books.Create(r.Context(), fromCtx[library.Book](r, ctxKeyBody))
	if err != nil {
		s.fail(w, r, err, bookNotFound)
		return
	}
	toJSON(w, http.StatusCreated, b)
}

func (s *Server) putBook(w http.ResponseWriter, r *http.Request) {
	b, err := s.books.Update(r.Context(), pathID(r), fromCtx[library.Book](r, ctxKeyBody))
	if err != nil {
		s.fail(w, r, err, bookNotFound)
		return
	}
	toJSON(w, http.StatusOK, b)
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := s.books.Delete(r.Context(), pathID(r)); err != nil {
		s.fail(w, r, err, bookNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getBookAuthor answers 404 when the book, its author_id or the author is missing.
func (s *Server) getBookAuthor(w http.ResponseWriter, r *http.Request) {
	a, err := s.books.Author(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err, "No author found for this book")
		return
	}
	toJSON(w, http.StatusOK, a)
}
