// Package book implements the book use-cases, including the full list filter
// set and the book-to-author traversal.
package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/errs"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
)

// ListQuery filters List. Free-text fields match case-insensitive substrings;
// Type, PublishDate and AuthorID match exactly. Empty fields are ignored.
type ListQuery struct {
	Title       string
	Description string
	Location    string
	Label       string
	Type        string
	PublishDate string
	Publisher   string
	Language    string
	Link        string
	AuthorID    string
	Page        docstore.Page
}

// Filter validates the exact-match fields and builds the store filter.
func (q ListQuery) Filter() (docstore.Filter, error) {
	f := docstore.Filter{}.
		Contains(library.FieldTitle, q.Title).
		Contains(library.FieldDescription, q.Description).
		Contains(library.FieldLocation, q.Location).
		Contains(library.FieldLabel, q.Label).
		Contains(library.FieldPublisher, q.Publisher).
		Contains(library.FieldLanguage, q.Language).
		Contains(library.FieldLink, q.Link)
	if q.Type != "" {
		if !library.BookType(q.Type).IsValid() {
			return f, fmt.Errorf("%w: unknown book type %q", errs.ErrInvalid, q.Type)
		}
		f = f.Eq(library.FieldType, q.Type)
	}
	if q.PublishDate != "" {
		if _, err := library.ParseDate(q.PublishDate); err != nil {
			return f, err
		}
		f = f.Eq(library.FieldPublishDate, q.PublishDate)
	}
	if q.AuthorID != "" {
		id, err := ident.Decode(q.AuthorID)
		if err != nil {
			return f, fmt.Errorf("author_id: %w", err)
		}
		f = f.AnyOf(docstore.EqID(library.FieldAuthorID, id))
	}
	return f, nil
}

type Service interface {
	Get(ctx context.Context, id ident.ID) (library.Book, error)
	List(ctx context.Context, q ListQuery) ([]library.Book, error)
	Create(ctx context.Context, b library.Book) (library.Book, error)
	Update(ctx context.Context, id ident.ID, b library.Book) (library.Book, error)
	Delete(ctx context.Context, id ident.ID) error
	Author(ctx context.Context, bookID ident.ID) (library.Author, error)
}

type service struct {
	books   docstore.Collection[library.BookDoc]
	authors docstore.Collection[library.AuthorDoc]
}

func New(books docstore.Collection[library.BookDoc], authors docstore.Collection[library.AuthorDoc]) Service {
	return &service{books: books, authors: authors}
}

func (s *service) Get(ctx context.Context, id ident.ID) (library.Book, error) {
	d, err := s.books.FindByID(ctx, id)
	if err != nil {
		return library.Book{}, err
	}
	return library.BookFromDoc(d), nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]library.Book, error) {
	f, err := q.Filter()
	if err != nil {
		return nil, err
	}
	docs, err := s.books.Find(ctx, f, q.Page)
	if err != nil {
		return nil, err
	}
	out := make([]library.Book, 0, len(docs))
	for _, d := range docs {
		out = append(out, library.BookFromDoc(d))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, b library.Book) (library.Book, error) {
	doc, err := s.prepare(b)
	if err != nil {
		return library.Book{}, err
	}
	id, err := s.books.Insert(ctx, doc)
	if err != nil {
		return library.Book{}, err
	}
	doc.ID = id
	return library.BookFromDoc(doc), nil
}

func (s *service) Update(ctx context.Context, id ident.ID, b library.Book) (library.Book, error) {
	doc, err := s.prepare(b)
	if err != nil {
		return library.Book{}, err
	}
	doc.ID = id
	d, err := docstore.Replace(ctx, s.books, id, doc)
	if err != nil {
		return library.Book{}, err
	}
	return library.BookFromDoc(d), nil
}

func (s *service) Delete(ctx context.Context, id ident.ID) error {
	return docstore.Remove(ctx, s.books, id)
}

// Author resolves the book's author. A missing book, a book without an
// author_id and a dangling author_id all report errs.ErrNotFound.
func (s *service) Author(ctx context.Context, bookID ident.ID) (library.Author, error) {
	b, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return library.Author{}, err
	}
	if b.AuthorID.IsZero() {
		return library.Author{}, errs.ErrNotFound
	}
	a, err := s.authors.FindByID(ctx, b.AuthorID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return library.Author{}, errs.ErrNotFound
		}
		return library.Author{}, err
	}
	return library.AuthorFromDoc(a), nil
}

func (s *service) prepare(b library.Book) (library.BookDoc, error) {
	if err := b.Validate(); err != nil {
		return library.BookDoc{}, err
	}
	return b.Doc()
}
