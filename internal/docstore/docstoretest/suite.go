// Package docstoretest holds a behavioural suite run against every
// docstore.Store backend.
package docstoretest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/errs"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
)

func strPtr(s string) *string { return &s }

// Books returns a small catalogue referencing authorID.
func Books(authorID ident.ID) []library.BookDoc {
	return []library.BookDoc{
		{Title: "Introduction to Data Science", Description: strPtr("Data science principles."), Location: "Shelf A1", Label: "Data Science Basics", Type: "datascience", PublishDate: "2021-05-15", Publisher: "Springer", Language: "English", Link: "https://example.com/data-science", AuthorID: authorID},
		{Title: "Modern Web Development", Description: strPtr("Front-end and back-end trends."), Location: "Shelf B3", Label: "Web Technologies", Type: "web", PublishDate: "2023-01-20", Publisher: "O'Reilly", Language: "English", Link: "https://example.com/web-development", AuthorID: authorID},
		{Title: "Computer SCIENCE 100% (2nd ed.)", Location: "Shelf C2", Label: "Foundations", Type: "system", PublishDate: "2019-09-10", Publisher: "Pearson", Language: "French", Link: "https://example.com/cs", AuthorID: ident.New()},
	}
}

// Run exercises the collection contract. The store must start empty.
func Run(t *testing.T, s docstore.Store) {
	t.Helper()
	t.Run("FindByIDAndNotFound", func(t *testing.T) { findByID(t, s) })
	t.Run("FindFilters", func(t *testing.T) { findFilters(t, s) })
	t.Run("UpdateCounts", func(t *testing.T) { updateCounts(t, s) })
	t.Run("DeleteAndDeleteMany", func(t *testing.T) { deletes(t, s) })
	t.Run("NullableAndReferences", func(t *testing.T) { loans(t, s) })
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

func findByID(t *testing.T, s docstore.Store) {
	c := ctx(t)
	authors := s.Authors()
	in := library.AuthorDoc{FirstName: "Alice", LastName: "Smith", Email: "a@x.com", Nationality: "British"}
	id, err := authors.Insert(c, in)
	require.NoError(t, err)
	require.False(t, id.IsZero())

	got, err := authors.FindByID(c, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	in.ID = id
	assert.Equal(t, in, got)

	_, err = authors.FindByID(c, ident.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func findFilters(t *testing.T, s docstore.Store) {
	c := ctx(t)
	books := s.Books()
	authorID := ident.New()
	var ids []ident.ID
	for _, b := range Books(authorID) {
		id, err := books.Insert(c, b)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := books.Find(c, docstore.Filter{}, docstore.Page{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := range all {
		assert.Equal(t, ids[i], all[i].ID, "natural order is insertion order")
	}

	got, err := books.Find(c, docstore.Filter{}.Contains(library.FieldTitle, "science"), docstore.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ids[0], got[0].ID)
	assert.Equal(t, ids[2], got[1].ID)

	got, err = books.Find(c, docstore.Filter{}.Contains(library.FieldTitle, "100% (2nd"), docstore.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ids[2], got[0].ID)

	got, err = books.Find(c, docstore.Filter{}.Contains(library.FieldTitle, "sc_ence"), docstore.Page{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = books.Find(c, docstore.Filter{}.Contains(library.FieldDescription, "trends"), docstore.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ids[1], got[0].ID)

	got, err = books.Find(c, docstore.Filter{}.EqID(library.FieldAuthorID, authorID).Eq(library.FieldType, "web"), docstore.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ids[1], got[0].ID)

	got, err = books.Find(c, docstore.Filter{}.AnyOf(docstore.Eq(library.FieldLanguage, "French"), docstore.Eq(library.FieldType, "web")), docstore.Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = books.Find(c, docstore.Filter{}, docstore.Page{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ids[1], got[0].ID)

	got, err = books.Find(c, docstore.Filter{}, docstore.Page{Skip: 5, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func updateCounts(t *testing.T, s docstore.Store) {
	c := ctx(t)
	authors := s.Authors()
	in := library.AuthorDoc{FirstName: "Jane", LastName: "Austen", Email: "austen@example.com", Nationality: "British"}
	id, err := authors.Insert(c, in)
	require.NoError(t, err)

	n, err := authors.Update(c, id, in)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "identical replacement modifies nothing")

	in.Email = "jane@example.com"
	n, err = authors.Update(c, id, in)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := authors.FindByID(c, id)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)

	n, err = authors.Update(c, ident.New(), in)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func deletes(t *testing.T, s docstore.Store) {
	c := ctx(t)
	adherents := s.Adherents()
	id, err := adherents.Insert(c, library.AdherentDoc{FirstName: "Bob", LastName: "Brown", MembershipNumber: "MEM002", Login: "bbrown", Password: "hash", Role: "librarian"})
	require.NoError(t, err)

	n, err := adherents.Delete(c, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = adherents.Delete(c, id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
	_, err = adherents.FindByID(c, id)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func loans(t *testing.T, s docstore.Store) {
	c := ctx(t)
	col := s.Loans()
	bookA, bookB, member := ident.New(), ident.New(), ident.New()
	docs := []library.LoanDoc{
		{LoanDate: "2012-10-10", ReturnDate: strPtr("2012-10-27"), BookID: bookA, AdherentID: member},
		{LoanDate: "2024-12-10", BookID: bookB, AdherentID: member},
		{LoanDate: "2012-10-10", ReturnDate: strPtr("2012-10-27"), BookID: bookB, AdherentID: ident.New()},
	}
	for _, d := range docs {
		_, err := col.Insert(c, d)
		require.NoError(t, err)
	}

	open, err := col.Find(c, docstore.Filter{}.EqID(library.FieldBookID, bookB).EqID(library.FieldAdherentID, member), docstore.Page{})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Nil(t, open[0].ReturnDate)
	assert.Equal(t, member, open[0].AdherentID)

	n, err := col.DeleteMany(c, docstore.Filter{}.Eq(library.FieldLoanDate, "1999-01-01"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = col.DeleteMany(c, docstore.Filter{}.Eq(library.FieldLoanDate, "2012-10-10"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	rest, err := col.Find(c, docstore.Filter{}, docstore.Page{})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "2024-12-10", rest[0].LoanDate)
}
