// Package memory provides an in-memory Store used for development and tests.
// Documents are kept as encoded JSON so that filters see exactly what the
// postgres backend sees.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/errs"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// collection is guarded by an RWMutex and keeps insertion order for Find.
type collection[D any] struct {
	mu    sync.RWMutex
	order []ident.ID
	docs  map[ident.ID][]byte
}

func newCollection[D any]() *collection[D] {
	return &collection[D]{docs: make(map[ident.ID][]byte)}
}

func (c *collection[D]) reset() {
	c.mu.Lock()
	c.order = nil
	c.docs = make(map[ident.ID][]byte)
	c.mu.Unlock()
}

// FindByID implements docstore.Collection.
func (c *collection[D]) FindByID(_ context.Context, id ident.ID) (D, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, ok := c.docs[id]
	if !ok {
		var zero D
		return zero, errs.ErrNotFound
	}
	return decode[D](raw)
}

// Find implements docstore.Collection.
func (c *collection[D]) Find(_ context.Context, f docstore.Filter, p docstore.Page) ([]D, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]D, 0)
	var skipped int64
	for _, id := range c.order {
		raw := c.docs[id]
		ok, err := matches(f, raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if skipped < p.Skip {
			skipped++
			continue
		}
		d, err := decode[D](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
		if p.Limit > 0 && int64(len(out)) >= p.Limit {
			break
		}
	}
	return out, nil
}

// Insert implements docstore.Collection.
func (c *collection[D]) Insert(_ context.Context, doc D) (ident.ID, error) {
	id := ident.New()
	raw, err := encode(id, doc)
	if err != nil {
		return ident.Nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[id] = raw
	c.order = append(c.order, id)
	return id, nil
}

// Update implements docstore.Collection.
func (c *collection[D]) Update(_ context.Context, id ident.ID, doc D) (int64, error) {
	raw, err := encode(id, doc)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	old, ok := c.docs[id]
	if !ok || bytes.Equal(old, raw) {
		return 0, nil
	}
	c.docs[id] = raw
	return 1, nil
}

// Delete implements docstore.Collection.
func (c *collection[D]) Delete(_ context.Context, id ident.ID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return 0, nil
	}
	delete(c.docs, id)
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

// DeleteMany implements docstore.Collection.
func (c *collection[D]) DeleteMany(_ context.Context, f docstore.Filter) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Match everything first so a decode failure leaves the collection untouched.
	doomed := make(map[ident.ID]struct{})
	for _, id := range c.order {
		ok, err := matches(f, c.docs[id])
		if err != nil {
			return 0, err
		}
		if ok {
			doomed[id] = struct{}{}
		}
	}
	if len(doomed) == 0 {
		return 0, nil
	}
	kept := make([]ident.ID, 0, len(c.order)-len(doomed))
	for _, id := range c.order {
		if _, ok := doomed[id]; ok {
			delete(c.docs, id)
			continue
		}
		kept = append(kept, id)
	}
	c.order = kept
	return int64(len(doomed)), nil
}

func matches(f docstore.Filter, raw []byte) (bool, error) {
	if f.Empty() {
		return true, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}
	return f.Match(m), nil
}

// encode renders doc as JSON with "_id" forced to id. Map keys are sorted,
// so identical documents encode to identical bytes.
func encode[D any](id ident.ID, doc D) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	m[library.FieldID] = ident.Encode(id)
	return json.Marshal(m)
}

func decode[D any](raw []byte) (D, error) {
	var d D
	if err := json.Unmarshal(raw, &d); err != nil {
		return d, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}

// Store is an in-memory docstore.Store. All methods are safe for concurrent use.
type Store struct {
	authors   *collection[library.AuthorDoc]
	books     *collection[library.BookDoc]
	adherents *collection[library.AdherentDoc]
	loans     *collection[library.LoanDoc]
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		authors:   newCollection[library.AuthorDoc](),
		books:     newCollection[library.BookDoc](),
		adherents: newCollection[library.AdherentDoc](),
		loans:     newCollection[library.LoanDoc](),
	}
}

func (s *Store) Authors() docstore.Collection[library.AuthorDoc]     { return s.authors }
func (s *Store) Books() docstore.Collection[library.BookDoc]         { return s.books }
func (s *Store) Adherents() docstore.Collection[library.AdherentDoc] { return s.adherents }
func (s *Store) Loans() docstore.Collection[library.LoanDoc]         { return s.loans }

// Ready always succeeds.
func (s *Store) Ready(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }

// Reset drops every document.
func (s *Store) Reset() {
	s.authors.reset()
	s.books.reset()
	s.adherents.reset()
	s.loans.reset()
}
