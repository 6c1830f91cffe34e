// Package docstore defines the repository contract shared by every storage
// backend: a generic collection of documents keyed by native ids, queried
// through a backend-neutral Filter.
package docstore

import (
	"context"

	"github.com/tinoosan/booksapi/internal/errs"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
)

// Page bounds a Find. Limit 0 means no limit.
type Page struct {
	Skip  int64
	Limit int64
}

// Collection is the repository contract for one resource.
// Implementations never interpret store errors beyond mapping absence to errs.ErrNotFound.
type Collection[D any] interface {
	// FindByID returns errs.ErrNotFound when no document has the id.
	FindByID(ctx context.Context, id ident.ID) (D, error)
	// Find returns matching documents in the store's natural order.
	Find(ctx context.Context, f Filter, p Page) ([]D, error)
	// Insert stores doc under a freshly assigned id.
	Insert(ctx context.Context, doc D) (ident.ID, error)
	// Update replaces the document and reports how many were modified.
	// An absent id and an identical replacement both report 0.
	Update(ctx context.Context, id ident.ID, doc D) (int64, error)
	// Delete removes by id and reports how many were removed.
	Delete(ctx context.Context, id ident.ID) (int64, error)
	// DeleteMany removes every match and reports how many were removed.
	DeleteMany(ctx context.Context, f Filter) (int64, error)
}

// Store groups the four collections behind one long-lived handle.
type Store interface {
	Authors() Collection[library.AuthorDoc]
	Books() Collection[library.BookDoc]
	Adherents() Collection[library.AdherentDoc]
	Loans() Collection[library.LoanDoc]
	// Ready checks connectivity.
	Ready(ctx context.Context) error
	// Close releases the handle.
	Close(ctx context.Context) error
}

// Replace performs a full-document replace and re-fetches the result. The
// modified count only tells "changed" from "unchanged or absent", so both
// outcomes end in a fetch; an absent id surfaces as errs.ErrNotFound.
// The write and the fetch are not atomic.
func Replace[D any](ctx context.Context, c Collection[D], id ident.ID, doc D) (D, error) {
	if _, err := c.Update(ctx, id, doc); err != nil {
		var zero D
		return zero, err
	}
	return c.FindByID(ctx, id)
}

// Remove deletes by id, mapping a zero count to errs.ErrNotFound.
func Remove[D any](ctx context.Context, c Collection[D], id ident.ID) error {
	n, err := c.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
