package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/ident"
)

func TestToBSON_Empty(t *testing.T) {
	assert.Equal(t, bson.D{}, toBSON(docstore.Filter{}))
}

func TestToBSON_SingleClause(t *testing.T) {
	got := toBSON(docstore.Filter{}.Contains("title", "c++ (2nd"))
	want := bson.D{{Key: "title", Value: primitive.Regex{Pattern: `c\+\+ \(2nd`, Options: "i"}}}
	assert.Equal(t, want, got)
}

func TestToBSON_AndOfOr(t *testing.T) {
	authorID := ident.New()
	got := toBSON(docstore.Filter{}.
		AnyOf(docstore.Eq("first_name", "Mark"), docstore.Eq("last_name", "Mark")).
		EqID("author_id", authorID))
	want := bson.D{{Key: "$and", Value: bson.A{
		bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "first_name", Value: "Mark"}},
			bson.D{{Key: "last_name", Value: "Mark"}},
		}}},
		bson.D{{Key: "author_id", Value: authorID}},
	}}}
	assert.Equal(t, want, got)
}
