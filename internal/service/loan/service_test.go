package loan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/booksapi/internal/errs"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/library"
	"github.com/tinoosan/booksapi/internal/storage/memory"
)

func datePtr(s string) *library.Date {
	d := library.Date(s)
	return &d
}

func seed(t *testing.T, svc Service, book, adherent string) []library.Loan {
	t.Helper()
	var out []library.Loan
	for _, l := range []library.Loan{
		{LoanDate: "2024-01-15", ReturnDate: datePtr("2024-02-15"), BookID: book, AdherentID: adherent},
		{LoanDate: "2024-01-15", BookID: ident.Encode(ident.New()), AdherentID: adherent},
		{LoanDate: "2024-03-01", BookID: book, AdherentID: ident.Encode(ident.New())},
	} {
		created, err := svc.Create(context.Background(), l)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func TestCreateThenGet_NullReturnDate(t *testing.T) {
	svc := New(memory.New().Loans())
	ctx := context.Background()
	in := library.Loan{LoanDate: "2024-01-15", BookID: ident.Encode(ident.New()), AdherentID: ident.Encode(ident.New())}
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)

	got, err := svc.Get(ctx, ident.MustDecode(created.ID))
	require.NoError(t, err)
	in.ID = created.ID
	assert.Equal(t, in, got)
	assert.Nil(t, got.ReturnDate)
}

func TestCreate_RejectsMalformedReferences(t *testing.T) {
	svc := New(memory.New().Loans())
	_, err := svc.Create(context.Background(), library.Loan{LoanDate: "2024-01-15", BookID: "bad", AdherentID: ident.Encode(ident.New())})
	assert.ErrorIs(t, err, errs.ErrInvalidID)
	_, err = svc.Create(context.Background(), library.Loan{LoanDate: "2024-01-15", BookID: ident.Encode(ident.New())})
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestList_Filters(t *testing.T) {
	svc := New(memory.New().Loans())
	ctx := context.Background()
	book := ident.Encode(ident.New())
	adherent := ident.Encode(ident.New())
	seed(t, svc, book, adherent)

	cases := []struct {
		name string
		q    ListQuery
		want int
	}{
		{"all", ListQuery{}, 3},
		{"loan date", ListQuery{LoanDate: "2024-01-15"}, 2},
		{"return date", ListQuery{ReturnDate: "2024-02-15"}, 1},
		{"book", ListQuery{BookID: book}, 2},
		{"adherent and date", ListQuery{AdherentID: adherent, LoanDate: "2024-03-01"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.List(ctx, tc.q)
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
		})
	}
}

func TestList_RejectsBadFilters(t *testing.T) {
	svc := New(memory.New().Loans())
	ctx := context.Background()
	_, err := svc.List(ctx, ListQuery{LoanDate: "15-01-2024"})
	assert.ErrorIs(t, err, errs.ErrInvalid)
	_, err = svc.List(ctx, ListQuery{ReturnDate: "2024-1-5"})
	assert.ErrorIs(t, err, errs.ErrInvalid)
	_, err = svc.List(ctx, ListQuery{BookID: "nope"})
	assert.ErrorIs(t, err, errs.ErrInvalidID)
}

func TestDeleteAll(t *testing.T) {
	svc := New(memory.New().Loans())
	ctx := context.Background()
	book := ident.Encode(ident.New())
	adherent := ident.Encode(ident.New())
	seed(t, svc, book, adherent)

	n, err := svc.DeleteAll(ctx, ListQuery{LoanDate: "1999-01-01"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = svc.DeleteAll(ctx, ListQuery{BookID: book})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, err := svc.List(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, adherent, left[0].AdherentID)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := New(memory.New().Loans())
	ctx := context.Background()
	created := seed(t, svc, ident.Encode(ident.New()), ident.Encode(ident.New()))[1]
	id := ident.MustDecode(created.ID)

	returned := created
	returned.ID = ""
	returned.ReturnDate = datePtr("2024-02-01")
	got, err := svc.Update(ctx, id, returned)
	require.NoError(t, err)
	require.NotNil(t, got.ReturnDate)
	assert.Equal(t, library.Date("2024-02-01"), *got.ReturnDate)

	_, err = svc.Update(ctx, ident.New(), returned)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, id))
	assert.ErrorIs(t, svc.Delete(ctx, id), errs.ErrNotFound)
}
