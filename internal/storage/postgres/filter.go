package postgres

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/tinoosan/booksapi/internal/docstore"
)

// Field names are spliced into SQL as jsonb keys, so they are restricted to
// identifier characters. Values always travel as bind parameters.
var reField = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause translates a filter into a single goqu expression. A nil
// result means no WHERE clause.
func whereClause(f docstore.Filter) (exp.Expression, error) {
	if f.Empty() {
		return nil, nil
	}
	ands := make([]exp.Expression, 0, len(f.Clauses()))
	for _, c := range f.Clauses() {
		ors := make([]exp.Expression, 0, len(c))
		for _, p := range c {
			e, err := predicate(p)
			if err != nil {
				return nil, err
			}
			ors = append(ors, e)
		}
		ands = append(ands, goqu.Or(ors...))
	}
	return goqu.And(ands...), nil
}

func predicate(p docstore.Predicate) (exp.Expression, error) {
	if !reField.MatchString(p.Field) {
		return nil, fmt.Errorf("postgres: invalid field name %q", p.Field)
	}
	field := goqu.L(fmt.Sprintf("doc->>'%s'", p.Field))
	switch p.Op {
	case docstore.OpContains:
		return field.ILike("%" + likeEscaper.Replace(p.Text()) + "%"), nil
	case docstore.OpEq:
		return field.Eq(p.Text()), nil
	default:
		return nil, fmt.Errorf("postgres: unsupported operator %d", p.Op)
	}
}
