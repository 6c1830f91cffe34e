package v1

import (
	"net/http"

	"github.com/tinoosan/booksapi/internal/library"
	"github.com/tinoosan/booksapi/internal/service/loan"
)

const loanNotFound = "Loan not found"

func (s *Server) listLoans(w http.ResponseWriter, r *http.Request) {
	out, err := s.loans.List(r.Context(), fromCtx[loan.ListQuery](r, ctxKeyQuery))
	if err != nil {
		s.fail(w, r, err, loanNotFound)
		return
	}
	writeList(s, w, out, "No loans found")
}

func (s *Server) getLoan(w http.ResponseWriter, r *http.Request) {
	l, err := s.loans.Get(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err, loanNotFound)
		return
	}
	toJSON(w, http.StatusOK, l)
}

func (s *Server) postLoan(w http.ResponseWriter, r *http.Request) {
	l, err := s.loans.Create(r.Context(), fromCtx[library.Loan](r, ctxKeyBody))
	if err != nil {
		s.fail(w, r, err, loanNotFound)
		return
	}
	toJSON(w, http.StatusCreated, l)
}

func (s *Server) putLoan(w http.ResponseWriter, r *http.Request) {
	l, err := s.loans.Update(r.Context(), pathID(r), fromCtx[library.Loan](r, ctxKeyBody))
	if err != nil {
		s.fail(w, r, err, loanNotFound)
		return
	}
	toJSON(w, http.StatusOK, l)
}

func (s *Server) deleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := s.loans.Delete(r.Context(), pathID(r)); err != nil {
		s.fail(w, r, err, loanNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteLoans removes every loan matching the list filters and returns the
// count, 0 included.
func (s *Server) deleteLoans(w http.ResponseWriter, r *http.Request) {
	n, err := s.loans.DeleteAll(r.Context(), fromCtx[loan.ListQuery](r, ctxKeyQuery))
	if err != nil {
		s.fail(w, r, err, loanNotFound)
		return
	}
	toJSON(w, http.StatusOK, n)
}
