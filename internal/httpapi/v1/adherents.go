package v1

import (
	"net/http"

	"github.com/tinoosan/booksapi/internal/library"
	"github.com/tinoosan/booksapi/internal/service/adherent"
)

const adherentNotFound = "Adherent not found"

func (s *Server) listAdherents(w http.ResponseWriter, r *http.Request) {
	out, err := s.adherents.List(r.Context(), fromCtx[adherent.ListQuery](r, ctxKeyQuery))
	if err != nil {
		s.fail(w, r, err, adherentNotFound)
		return
	}
	writeList(s, w, out, "No adherents found")
}

func (s *Server) getAdherent(w http.ResponseWriter, r *http.Request) {
	a, err := s.adherents.Get(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err, adherentNotFound)
		return
	}
	toJSON(w, http.StatusOK, a)
}

func (s *Server) postAdherent(w http.ResponseWriter, r *http.Request) {
	a, err := s.adherents.Create(r.Context(), fromCtx[library.AdherentInput](r, ctxKeyBody))
	if err != nil {
		s.fail(w, r, err, adherentNotFound)
		return
	}
	toJSON(w, http.StatusCreated, a)
}

func (s *Server) putAdherent(w http.ResponseWriter, r *http.Request) {
	a, err := s.adherents.Update(r.Context(), pathID(r), fromCtx[library.AdherentInput](r, ctxKeyBody))
	if err != nil {
		s.fail(w, r, err, adherentNotFound)
		return
	}
	toJSON(w, http.StatusOK, a)
}

func (s *Server) deleteAdherent(w http.ResponseWriter, r *http.Request) {
	if err := s.adherents.Delete(r.Context(), pathID(r)); err != nil {
		s.fail(w, r, err, adherentNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getAdherentLoans(w http.ResponseWriter, r *http.Request) {
	out, err := s.adherents.Loans(r.Context(), pathID(r))
	if err != nil {
		s.fail(w, r, err, adherentNotFound)
		return
	}
	writeList(s, w, out, "No loans found for this adherent")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	req := fromCtx[loginRequest](r, ctxKeyBody)
	tok, err := s.adherents.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		s.fail(w, r, err, adherentNotFound)
		return
	}
	toJSON(w, http.StatusOK, tok)
}
