package devseed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tinoosan/booksapi/internal/credential"
	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/ident"
	"github.com/tinoosan/booksapi/internal/service/adherent"
	"github.com/tinoosan/booksapi/internal/service/author"
	"github.com/tinoosan/booksapi/internal/service/book"
	"github.com/tinoosan/booksapi/internal/service/loan"
	"github.com/tinoosan/booksapi/internal/storage/memory"
)

func TestRun(t *testing.T) {
	st := memory.New()
	issuer, err := credential.NewIssuer("seed-secret", 0)
	require.NoError(t, err)
	svc := Services{
		Authors:   author.New(st.Authors(), st.Books()),
		Books:     book.New(st.Books(), st.Authors()),
		Adherents: adherent.New(st.Adherents(), st.Loans(), credential.NewHasher(bcrypt.MinCost), issuer),
		Loans:     loan.New(st.Loans()),
	}
	ctx := context.Background()

	res, err := Run(ctx, svc)
	require.NoError(t, err)
	assert.Len(t, res.Authors, 4)
	assert.Len(t, res.Books, 12)
	assert.Len(t, res.Members, 3)
	assert.Len(t, res.Loans, 4)

	for _, b := range res.Books {
		_, err := ident.Decode(b.AuthorID)
		assert.NoError(t, err, b.Title)
	}

	stored, err := st.Adherents().Find(ctx, docstore.Filter{}, docstore.Page{})
	require.NoError(t, err)
	for _, d := range stored {
		assert.NotContains(t, d.Password, "password")
	}

	m := res.Members[0]
	_, err = svc.Adherents.Login(ctx, m.Login, m.Password)
	assert.NoError(t, err)

	got, err := svc.Adherents.Loans(ctx, ident.MustDecode(m.ID))
	require.NoError(t, err)
	assert.Len(t, got, 3)

	ids := res.IDs()
	assert.Equal(t, res.Members[1].ID, ids["adherent_bbrown"])
	assert.Equal(t, res.Books[0].ID, ids["first_book"])
}
