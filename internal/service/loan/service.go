// Package loan implements the loan use-cases, including filtered bulk delete.
// Referenced books and members must decode as ids but are not required to exist.
package loan

import (
	"context"
	"fmt"
	"regexp"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/errs"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
)

var datePattern = regexp.MustCompile(`^[0-9]{4}-[0-1][0-9]-[0-9]{2}$`)

// ListQuery filters List and DeleteAll. Every field matches exactly.
type ListQuery struct {
	LoanDate   string
	ReturnDate string
	BookID     string
	AdherentID string
	Page       docstore.Page
}

// Filter validates the query and builds the store filter.
func (q ListQuery) Filter() (docstore.Filter, error) {
	var f docstore.Filter
	for _, d := range []struct{ field, value string }{
		{library.FieldLoanDate, q.LoanDate},
		{library.FieldReturnDate, q.ReturnDate},
	} {
		if d.value == "" {
			continue
		}
		if !datePattern.MatchString(d.value) {
			return f, fmt.Errorf("%w: %s must match YYYY-MM-DD", errs.ErrInvalid, d.field)
		}
		f = f.Eq(d.field, d.value)
	}
	for _, r := range []struct{ field, value string }{
		{library.FieldBookID, q.BookID},
		{library.FieldAdherentID, q.AdherentID},
	} {
		if r.value == "" {
			continue
		}
		id, err := ident.Decode(r.value)
		if err != nil {
			return f, fmt.Errorf("%s: %w", r.field, err)
		}
		f = f.AnyOf(docstore.EqID(r.field, id))
	}
	return f, nil
}

type Service interface {
	Get(ctx context.Context, id ident.ID) (library.Loan, error)
	List(ctx context.Context, q ListQuery) ([]library.Loan, error)
	Create(ctx context.Context, l library.Loan) (library.Loan, error)
	Update(ctx context.Context, id ident.ID, l library.Loan) (library.Loan, error)
	Delete(ctx context.Context, id ident.ID) error
	// DeleteAll removes every loan matching q (ignoring its Page) and
	// reports the count; zero matches is not an error.
	DeleteAll(ctx context.Context, q ListQuery) (int64, error)
}

type service struct {
	loans docstore.Collection[library.LoanDoc]
}

func New(loans docstore.Collection[library.LoanDoc]) Service {
	return &service{loans: loans}
}

func (s *service) Get(ctx context.Context, id ident.ID) (library.Loan, error) {
	d, err := s.loans.FindByID(ctx, id)
	if err != nil {
		return library.Loan{}, err
	}
	return library.LoanFromDoc(d), nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]library.Loan, error) {
	f, err := q.Filter()
	if err != nil {
		return nil, err
	}
	docs, err := s.loans.Find(ctx, f, q.Page)
	if err != nil {
		return nil, err
	}
	out := make([]library.Loan, 0, len(docs))
	for _, d := range docs {
		out = append(out, library.LoanFromDoc(d))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, l library.Loan) (library.Loan, error) {
	doc, err := prepare(l)
	if err != nil {
		return library.Loan{}, err
	}
	id, err := s.loans.Insert(ctx, doc)
	if err != nil {
		return library.Loan{}, err
	}
	doc.ID = id
	return library.LoanFromDoc(doc), nil
}

func (s *service) Update(ctx context.Context, id ident.ID, l library.Loan) (library.Loan, error) {
	doc, err := prepare(l)
	if err != nil {
		return library.Loan{}, err
	}
	doc.ID = id
	d, err := docstore.Replace(ctx, s.loans, id, doc)
	if err != nil {
		return library.Loan{}, err
	}
	return library.LoanFromDoc(d), nil
}

func (s *service) Delete(ctx context.Context, id ident.ID) error {
	return docstore.Remove(ctx, s.loans, id)
}

func (s *service) DeleteAll(ctx context.Context, q ListQuery) (int64, error) {
	f, err := q.Filter()
	if err != nil {
		return 0, err
	}
	return s.loans.DeleteMany(ctx, f)
}

func prepare(l library.Loan) (library.LoanDoc, error) {
	if err := l.Validate(); err != nil {
		return library.LoanDoc{}, err
	}
	return l.Doc()
}
