package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/docstore/docstoretest"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func truncateAll(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.pool.Exec(ctx, `truncate table authors, books, adherents, loans`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func TestStore_Contract(t *testing.T) {
	s := mustOpen(t, getTestDSN(t))
	defer s.Close(context.Background())
	truncateAll(t, s)
	docstoretest.Run(t, s)
}

func TestStore_Ready(t *testing.T) {
	s := mustOpen(t, getTestDSN(t))
	defer s.Close(context.Background())
	require.NoError(t, s.Ready(context.Background()))
}

func TestWhereClause_RendersJSONBPredicates(t *testing.T) {
	f := docstore.Filter{}.
		Contains("title", "100%_").
		AnyOf(docstore.Eq("first_name", "Mark"), docstore.Eq("last_name", "Mark"))
	where, err := whereClause(f)
	require.NoError(t, err)

	q, args, err := dialect.From("books").Prepared(true).Select(colDoc).Where(where).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, q, `doc->>'title' ILIKE $1`)
	assert.Contains(t, q, `doc->>'first_name' = $2`)
	assert.Contains(t, q, " OR ")
	assert.Equal(t, []any{`%100\%\_%`, "Mark", "Mark"}, args)
}

func TestWhereClause_EmptyFilterHasNoWhere(t *testing.T) {
	where, err := whereClause(docstore.Filter{})
	require.NoError(t, err)
	assert.Nil(t, where)
}

func TestWhereClause_RejectsUnsafeField(t *testing.T) {
	_, err := whereClause(docstore.Filter{}.Eq("title'; drop table books; --", "x"))
	assert.Error(t, err)
}
