// Package mongo provides a docstore.Store backed by MongoDB. It is the
// native home of the ObjectID identifiers used across the service.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/errs"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
)

// collection maps one mongo collection onto docstore.Collection.
type collection[D any] struct {
	coll *mongo.Collection
}

func byID(id ident.ID) bson.D { return bson.D{{Key: library.FieldID, Value: id}} }

// FindByID implements docstore.Collection.
func (c collection[D]) FindByID(ctx context.Context, id ident.ID) (D, error) {
	var d D
	if err := c.coll.FindOne(ctx, byID(id)).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return d, errs.ErrNotFound
		}
		return d, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	return d, nil
}

// Find implements docstore.Collection. Results follow _id order, which for
// ObjectIDs is creation order.
func (c collection[D]) Find(ctx context.Context, f docstore.Filter, p docstore.Page) ([]D, error) {
	opts := options.Find().SetSort(bson.D{{Key: library.FieldID, Value: 1}})
	if p.Skip > 0 {
		opts.SetSkip(p.Skip)
	}
	if p.Limit > 0 {
		opts.SetLimit(p.Limit)
	}
	cur, err := c.coll.Find(ctx, toBSON(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	out := make([]D, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

// Insert implements docstore.Collection. The driver assigns the id because
// documents omit a zero _id.
func (c collection[D]) Insert(ctx context.Context, doc D) (ident.ID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ident.Nil, fmt.Errorf("insert %s: %w", c.coll.Name(), errs.ErrConflict)
		}
		return ident.Nil, fmt.Errorf("insert %s: %w", c.coll.Name(), err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return ident.Nil, fmt.Errorf("insert %s: unexpected id type %T", c.coll.Name(), res.InsertedID)
	}
	return id, nil
}

// Update implements docstore.Collection as a full-document replace.
func (c collection[D]) Update(ctx context.Context, id ident.ID, doc D) (int64, error) {
	res, err := c.coll.ReplaceOne(ctx, byID(id), doc)
	if err != nil {
		return 0, fmt.Errorf("replace %s: %w", c.coll.Name(), err)
	}
	return res.ModifiedCount, nil
}

// Delete implements docstore.Collection.
func (c collection[D]) Delete(ctx context.Context, id ident.ID) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", c.coll.Name(), err)
	}
	return res.DeletedCount, nil
}

// DeleteMany implements docstore.Collection.
func (c collection[D]) DeleteMany(ctx context.Context, f docstore.Filter) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, toBSON(f))
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", c.coll.Name(), err)
	}
	return res.DeletedCount, nil
}

// Store holds one mongo client for the lifetime of the process.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to uri and verifies the primary is reachable.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Authors() docstore.Collection[library.AuthorDoc] {
	return collection[library.AuthorDoc]{coll: s.db.Collection(library.CollectionAuthors)}
}

func (s *Store) Books() docstore.Collection[library.BookDoc] {
	return collection[library.BookDoc]{coll: s.db.Collection(library.CollectionBooks)}
}

func (s *Store) Adherents() docstore.Collection[library.AdherentDoc] {
	return collection[library.AdherentDoc]{coll: s.db.Collection(library.CollectionAdherents)}
}

func (s *Store) Loans() docstore.Collection[library.LoanDoc] {
	return collection[library.LoanDoc]{coll: s.db.Collection(library.CollectionLoans)}
}

// Ready pings the primary.
func (s *Store) Ready(ctx context.Context) error { return s.client.Ping(ctx, readpref.Primary()) }

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

// Drop removes the whole database. Used by tests.
func (s *Store) Drop(ctx context.Context) error { return s.db.Drop(ctx) }
