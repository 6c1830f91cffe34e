// Package author implements the author use-cases: CRUD, name/nationality
// filtering and the books-by-author traversal.
package author

import (
	"context"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
)

// ListQuery filters List. Name matches first_name or last_name exactly.
type ListQuery struct {
	Name        string
	Nationality string
	Page        docstore.Page
}

type Service interface {
	Get(ctx context.Context, id ident.ID) (library.Author, error)
	List(ctx context.Context, q ListQuery) ([]library.Author, error)
	Create(ctx context.Context, a library.Author) (library.Author, error)
	Update(ctx context.Context, id ident.ID, a library.Author) (library.Author, error)
	Delete(ctx context.Context, id ident.ID) error
	Books(ctx context.Context, authorID ident.ID) ([]library.Book, error)
}

type service struct {
	authors docstore.Collection[library.AuthorDoc]
	books   docstore.Collection[library.BookDoc]
}

func New(authors docstore.Collection[library.AuthorDoc], books docstore.Collection[library.BookDoc]) Service {
	return &service{authors: authors, books: books}
}

func (s *service) Get(ctx context.Context, id ident.ID) (library.Author, error) {
	d, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return library.Author{}, err
	}
	return library.AuthorFromDoc(d), nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]library.Author, error) {
	f := docstore.Filter{}.Eq(library.FieldNationality, q.Nationality)
	if q.Name != "" {
		f = f.AnyOf(
			docstore.Eq(library.FieldFirstName, q.Name),
			docstore.Eq(library.FieldLastName, q.Name),
		)
	}
	docs, err := s.authors.Find(ctx, f, q.Page)
	if err != nil {
		return nil, err
	}
	out := make([]library.Author, 0, len(docs))
	for _, d := range docs {
		out = append(out, library.AuthorFromDoc(d))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, a library.Author) (library.Author, error) {
	if err := a.Validate(); err != nil {
		return library.Author{}, err
	}
	doc := a.Doc()
	id, err := s.authors.Insert(ctx, doc)
	if err != nil {
		return library.Author{}, err
	}
	doc.ID = id
	return library.AuthorFromDoc(doc), nil
}

func (s *service) Update(ctx context.Context, id ident.ID, a library.Author) (library.Author, error) {
	if err := a.Validate(); err != nil {
		return library.Author{}, err
	}
	doc := a.Doc()
	doc.ID = id
	d, err := docstore.Replace(ctx, s.authors, id, doc)
	if err != nil {
		return library.Author{}, err
	}
	return library.AuthorFromDoc(d), nil
}

func (s *service) Delete(ctx context.Context, id ident.ID) error {
	return docstore.Remove(ctx, s.authors, id)
}

// Books returns every book referencing the author. Existence of the author
// itself is not checked: a dangling author_id still yields its books.
func (s *service) Books(ctx context.Context, authorID ident.ID) ([]library.Book, error) {
	if authorID.IsZero() {
		return []library.Book{}, nil
	}
	docs, err := s.books.Find(ctx, docstore.Filter{}.EqID(library.FieldAuthorID, authorID), docstore.Page{})
	if err != nil {
		return nil, err
	}
	out := make([]library.Book, 0, len(docs))
	for _, d := range docs {
		out = append(out, library.BookFromDoc(d))
	}
	return out, nil
}
