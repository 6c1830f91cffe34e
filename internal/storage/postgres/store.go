// Package postgres provides a pgx-backed docstore.Store. Each collection is a
// table of (seq, id, doc jsonb); filters are rendered to SQL with goqu and
// evaluated against the jsonb document.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/errs"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
)

//go:embed schema.sql
var schemaSQL string

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	dialectPostgres   = "postgres"
	colSeq            = "seq"
	colID             = "id"
	colDoc            = "doc"
	castJsonb         = "?::jsonb"
	pgUniqueViolation = "23505"
)

var dialect = goqu.Dialect(dialectPostgres)

// collection maps one table onto docstore.Collection.
type collection[D any] struct {
	pool  *pgxpool.Pool
	table string
}

// FindByID implements docstore.Collection.
func (c collection[D]) FindByID(ctx context.Context, id ident.ID) (D, error) {
	var zero D
	q, args, err := dialect.From(c.table).Prepared(true).
		Select(colDoc).
		Where(goqu.C(colID).Eq(ident.Encode(id))).
		ToSQL()
	if err != nil {
		return zero, fmt.Errorf("build select: %w", err)
	}
	var raw []byte
	if err := c.pool.QueryRow(ctx, q, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, errs.ErrNotFound
		}
		return zero, fmt.Errorf("select %s: %w", c.table, err)
	}
	return decode[D](raw)
}

// Find implements docstore.Collection.
func (c collection[D]) Find(ctx context.Context, f docstore.Filter, p docstore.Page) ([]D, error) {
	where, err := whereClause(f)
	if err != nil {
		return nil, err
	}
	ds := dialect.From(c.table).Prepared(true).
		Select(colDoc).
		Order(goqu.I(colSeq).Asc())
	if where != nil {
		ds = ds.Where(where)
	}
	if p.Skip > 0 {
		ds = ds.Offset(uint(p.Skip))
	}
	if p.Limit > 0 {
		ds = ds.Limit(uint(p.Limit))
	}
	q, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := c.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", c.table, err)
	}
	defer rows.Close()
	out := make([]D, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		d, err := decode[D](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Insert implements docstore.Collection.
func (c collection[D]) Insert(ctx context.Context, doc D) (ident.ID, error) {
	id := ident.New()
	raw, err := encode(id, doc)
	if err != nil {
		return ident.Nil, err
	}
	q, args, err := dialect.Insert(c.table).Prepared(true).
		Cols(colID, colDoc).
		Vals(goqu.Vals{ident.Encode(id), goqu.L(castJsonb, string(raw))}).
		ToSQL()
	if err != nil {
		return ident.Nil, fmt.Errorf("build insert: %w", err)
	}
	if _, err := c.pool.Exec(ctx, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ident.Nil, fmt.Errorf("insert %s: %w", c.table, errs.ErrConflict)
		}
		return ident.Nil, fmt.Errorf("insert %s: %w", c.table, err)
	}
	return id, nil
}

// Update implements docstore.Collection. The IS DISTINCT FROM guard makes
// an identical replacement report zero rows.
func (c collection[D]) Update(ctx context.Context, id ident.ID, doc D) (int64, error) {
	raw, err := encode(id, doc)
	if err != nil {
		return 0, err
	}
	q, args, err := dialect.Update(c.table).Prepared(true).
		Set(goqu.Record{colDoc: goqu.L(castJsonb, string(raw))}).
		Where(
			goqu.C(colID).Eq(ident.Encode(id)),
			goqu.L("doc IS DISTINCT FROM "+castJsonb, string(raw)),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}
	tag, err := c.pool.Exec(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", c.table, err)
	}
	return tag.RowsAffected(), nil
}

// Delete implements docstore.Collection.
func (c collection[D]) Delete(ctx context.Context, id ident.ID) (int64, error) {
	q, args, err := dialect.Delete(c.table).Prepared(true).
		Where(goqu.C(colID).Eq(ident.Encode(id))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	tag, err := c.pool.Exec(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", c.table, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteMany implements docstore.Collection.
func (c collection[D]) DeleteMany(ctx context.Context, f docstore.Filter) (int64, error) {
	where, err := whereClause(f)
	if err != nil {
		return 0, err
	}
	ds := dialect.Delete(c.table).Prepared(true)
	if where != nil {
		ds = ds.Where(where)
	}
	q, args, err := ds.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	tag, err := c.pool.Exec(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", c.table, err)
	}
	return tag.RowsAffected(), nil
}

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

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string and
// creates the tables when missing.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Authors() docstore.Collection[library.AuthorDoc] {
	return collection[library.AuthorDoc]{pool: s.pool, table: library.CollectionAuthors}
}

func (s *Store) Books() docstore.Collection[library.BookDoc] {
	return collection[library.BookDoc]{pool: s.pool, table: library.CollectionBooks}
}

func (s *Store) Adherents() docstore.Collection[library.AdherentDoc] {
	return collection[library.AdherentDoc]{pool: s.pool, table: library.CollectionAdherents}
}

func (s *Store) Loans() docstore.Collection[library.LoanDoc] {
	return collection[library.LoanDoc]{pool: s.pool, table: library.CollectionLoans}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Close releases the underlying pool.
func (s *Store) Close(context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
