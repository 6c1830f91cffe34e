package docstore

import (
	"strings"

	"github.com/tinoosan/booksapi/internal/ident"
)

// Op is a predicate operator.
type Op int

const (
	// OpEq matches a field exactly. Value is a string or an ident.ID.
	OpEq Op = iota
	// OpContains matches a case-insensitive substring of a string field.
	OpContains
)

// Predicate tests a single document field.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Eq builds an exact-match predicate on a string field.
func Eq(field, value string) Predicate { return Predicate{Field: field, Op: OpEq, Value: value} }

// EqID builds an exact-match predicate on a reference or id field.
func EqID(field string, id ident.ID) Predicate { return Predicate{Field: field, Op: OpEq, Value: id} }

// Contains builds a case-insensitive substring predicate.
func Contains(field, value string) Predicate {
	return Predicate{Field: field, Op: OpContains, Value: value}
}

// Clause is a disjunction: it matches when any predicate matches.
type Clause []Predicate

// Filter is a conjunction of clauses. The zero value matches everything.
// Builder methods return a new Filter and skip empty values, so an absent
// query parameter never turns into a predicate.
type Filter struct {
	clauses []Clause
}

// Clauses exposes the clauses for backend translation.
func (f Filter) Clauses() []Clause { return f.clauses }

// Empty reports whether the filter matches everything.
func (f Filter) Empty() bool { return len(f.clauses) == 0 }

func (f Filter) with(c Clause) Filter {
	out := make([]Clause, len(f.clauses), len(f.clauses)+1)
	copy(out, f.clauses)
	return Filter{clauses: append(out, c)}
}

// Eq adds an exact string match unless value is empty.
func (f Filter) Eq(field, value string) Filter {
	if value == "" {
		return f
	}
	return f.with(Clause{Eq(field, value)})
}

// EqID adds an exact id match unless id is Nil.
func (f Filter) EqID(field string, id ident.ID) Filter {
	if id.IsZero() {
		return f
	}
	return f.with(Clause{EqID(field, id)})
}

// Contains adds a substring match unless value is empty.
func (f Filter) Contains(field, value string) Filter {
	if value == "" {
		return f
	}
	return f.with(Clause{Contains(field, value)})
}

// AnyOf adds a clause matching when any of preds matches.
func (f Filter) AnyOf(preds ...Predicate) Filter {
	if len(preds) == 0 {
		return f
	}
	return f.with(Clause(preds))
}

// Match evaluates the filter against a document decoded into a generic map,
// where ids are already rendered as hex strings.
func (f Filter) Match(doc map[string]any) bool {
	for _, c := range f.clauses {
		if !c.match(doc) {
			return false
		}
	}
	return true
}

func (c Clause) match(doc map[string]any) bool {
	for _, p := range c {
		if p.match(doc) {
			return true
		}
	}
	return false
}

func (p Predicate) match(doc map[string]any) bool {
	got, ok := doc[p.Field].(string)
	if !ok {
		return false
	}
	want := p.Text()
	switch p.Op {
	case OpContains:
		return strings.Contains(strings.ToLower(got), strings.ToLower(want))
	default:
		return got == want
	}
}

// Text returns the predicate value as stored in JSON documents.
func (p Predicate) Text() string {
	switch v := p.Value.(type) {
	case ident.ID:
		return ident.Encode(v)
	case string:
		return v
	default:
		return ""
	}
}
