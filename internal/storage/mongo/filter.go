package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tinoosan/booksapi/internal/docstore"
	"github.com/tinoosan/booksapi/internal/ident"
)

// toBSON translates a filter into a query document. Substring matches
// become case-insensitive regexes with metacharacters quoted.
func toBSON(f docstore.Filter) bson.D {
	clauses := f.Clauses()
	if len(clauses) == 0 {
		return bson.D{}
	}
	ands := make(bson.A, 0, len(clauses))
	for _, c := range clauses {
		if len(c) == 1 {
			ands = append(ands, predicate(c[0]))
			continue
		}
		ors := make(bson.A, 0, len(c))
		for _, p := range c {
			ors = append(ors, predicate(p))
		}
		ands = append(ands, bson.D{{Key: "$or", Value: ors}})
	}
	if len(ands) == 1 {
		return ands[0].(bson.D)
	}
	return bson.D{{Key: "$and", Value: ands}}
}

func predicate(p docstore.Predicate) bson.D {
	switch p.Op {
	case docstore.OpContains:
		return bson.D{{Key: p.Field, Value: primitive.Regex{Pattern: regexp.QuoteMeta(p.Text()), Options: "i"}}}
	default:
		if id, ok := p.Value.(ident.ID); ok {
			return bson.D{{Key: p.Field, Value: id}}
		}
		return bson.D{{Key: p.Field, Value: p.Text()}}
	}
}
