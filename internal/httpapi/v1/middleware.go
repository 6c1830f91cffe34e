package v1

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/errs"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
	"github.com/tinoosan/booksapi/internal/service/adherent"
	"github.com/tinoosan/booksapi/internal/service/author"
	"github.com/tinoosan/booksapi/internal/service/book"
	"github.com/tinoosan/booksapi/internal/service/loan"
)

type ctxKey string

const (
	ctxKeyID    ctxKey = "validatedID"
	ctxKeyBody  ctxKey = "validatedBody"
	ctxKeyQuery ctxKey = "validatedQuery"
)

// fromCtx returns the value a validate* middleware stored under key.
func fromCtx[T any](r *http.Request, key ctxKey) T {
	v, _ := r.Context().Value(key).(T)
	return v
}

func pathID(r *http.Request) ident.ID { return fromCtx[ident.ID](r, ctxKeyID) }

// validateID decodes the {id} path parameter and stores it in the request context.
func (s *Server) validateID(resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := ident.Decode(chi.URLParam(r, "id"))
			if err != nil {
				badRequest(w, "Invalid "+resource+" ID format", "invalid_id")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateBody requires a JSON body, decodes it strictly into Req, converts it
// and runs check before storing the result for the handler.
func validateBody[Req, T any](s *Server, convert func(Req) T, check func(T) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req Req
			if err := decodeJSON(r, &req); err != nil {
				badRequest(w, "Invalid JSON body", "invalid_json")
				return
			}
			v := convert(req)
			if check != nil {
				if err := check(v); err != nil {
					s.fail(w, r, err, "")
					return
				}
			}
			ctx := context.WithValue(r.Context(), ctxKeyBody, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) validateAuthorBody() func(http.Handler) http.Handler {
	return validateBody(s, toAuthor, library.Author.Validate)
}

func (s *Server) validateBookBody() func(http.Handler) http.Handler {
	return validateBody(s, toBook, func(b library.Book) error {
		if err := b.Validate(); err != nil {
			return err
		}
		_, err := b.Doc()
		return err
	})
}

// validateAdherentBody leaves the password rule to the service: required on
// create, optional on update.
func (s *Server) validateAdherentBody() func(http.Handler) http.Handler {
	return validateBody(s, toAdherentInput, library.AdherentInput.Validate)
}

func (s *Server) validateLoanBody() func(http.Handler) http.Handler {
	return validateBody(s, toLoan, func(l library.Loan) error {
		if err := l.Validate(); err != nil {
			return err
		}
		_, err := l.Doc()
		return err
	})
}

func (s *Server) validateLoginBody() func(http.Handler) http.Handler {
	return validateBody[loginRequest, loginRequest](s, identity[loginRequest], nil)
}

// validateQuery parses a list query with parse, stores it and lets the handler run.
func validateQuery[Q any](s *Server, parse func(url.Values, docstore.Page) (Q, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			values := r.URL.Query()
			page, err := s.parsePage(values)
			if err != nil {
				s.fail(w, r, err, "")
				return
			}
			q, err := parse(values, page)
			if err != nil {
				s.fail(w, r, err, "")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyQuery, q)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parsePage reads skip and limit. skip defaults to 0; limit defaults to
// DefaultPageSize and may not exceed the configured maximum.
func (s *Server) parsePage(q url.Values) (docstore.Page, error) {
	p := docstore.Page{Limit: DefaultPageSize}
	if raw := q.Get("skip"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return p, fmt.Errorf("%w: skip must be a non-negative integer", errs.ErrInvalid)
		}
		p.Skip = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 || n > s.opts.MaxPageSize {
			return p, fmt.Errorf("%w: limit must be between 1 and %d", errs.ErrInvalid, s.opts.MaxPageSize)
		}
		p.Limit = n
	}
	return p, nil
}

func (s *Server) validateListAuthors() func(http.Handler) http.Handler {
	return validateQuery(s, func(v url.Values, p docstore.Page) (author.ListQuery, error) {
		return author.ListQuery{Name: v.Get("name"), Nationality: v.Get("nationality"), Page: p}, nil
	})
}

func (s *Server) validateListBooks() func(http.Handler) http.Handler {
	return validateQuery(s, func(v url.Values, p docstore.Page) (book.ListQuery, error) {
		q := book.ListQuery{
			Title:       v.Get(library.FieldTitle),
			Description: v.Get(library.FieldDescription),
			Location:    v.Get(library.FieldLocation),
			Label:       v.Get(library.FieldLabel),
			Type:        v.Get(library.FieldType),
			PublishDate: v.Get(library.FieldPublishDate),
			Publisher:   v.Get(library.FieldPublisher),
			Language:    v.Get(library.FieldLanguage),
			Link:        v.Get(library.FieldLink),
			AuthorID:    v.Get(library.FieldAuthorID),
			Page:        p,
		}
		_, err := q.Filter()
		return q, err
	})
}

func (s *Server) validateListAdherents() func(http.Handler) http.Handler {
	return validateQuery(s, func(v url.Values, p docstore.Page) (adherent.ListQuery, error) {
		q := adherent.ListQuery{Role: v.Get(library.FieldRole), Page: p}
		if q.Role != "" && !library.Role(q.Role).IsValid() {
			return q, fmt.Errorf("%w: unknown role %q", errs.ErrInvalid, q.Role)
		}
		return q, nil
	})
}

func (s *Server) validateListLoans() func(http.Handler) http.Handler {
	return validateQuery(s, func(v url.Values, p docstore.Page) (loan.ListQuery, error) {
		q := loan.ListQuery{
			LoanDate:   v.Get(library.FieldLoanDate),
			ReturnDate: v.Get(library.FieldReturnDate),
			BookID:     v.Get(library.FieldBookID),
			AdherentID: v.Get(library.FieldAdherentID),
			Page:       p,
		}
		_, err := q.Filter()
		return q, err
	})
}
