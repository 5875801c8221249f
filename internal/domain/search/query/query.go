// Package query defines the typed boolean query tree the compiler produces.
//
// The tree is wire-format free: the index repository serializes it into the
// backend's query syntax at the boundary.
package query

// Occurrence tags how a clause participates in the boolean query.
type Occurrence int

const (
	// Optional clauses boost ranking but never exclude documents ("should").
	Optional Occurrence = iota
	// Mandatory clauses exclude documents that do not match ("filter").
	Mandatory
)

// String returns the clause bucket name.
func (o Occurrence) String() string {
	if o == Mandatory {
		return "filter"
	}
	return "should"
}

// Clause is a node of the query tree.
type Clause interface {
	isClause()
}

// Match is a full-text match on a single field. Boost 0 means no boost.
type Match struct {
	Field string
	Text  string
	Boost float64
}

func (Match) isClause() {}

// Term is an exact term match on a single field.
type Term struct {
	Field string
	Value string
}

func (Term) isClause() {}

// Nested scopes an inner boolean query to a repeating sub-object path.
// The inner query is evaluated against each sub-object independently.
type Nested struct {
	Path  string
	Query Bool
}

func (Nested) isClause() {}

// Bool groups clauses into should and filter buckets.
type Bool struct {
	Should []Clause
	Filter []Clause
}

func (Bool) isClause() {}

// Add appends a clause to the bucket selected by occ. Clauses never move
// between buckets after being added.
func (b *Bool) Add(c Clause, occ Occurrence) {
	if occ == Mandatory {
		b.Filter = append(b.Filter, c)
		return
	}
	b.Should = append(b.Should, c)
}

// IsEmpty reports whether the query has no clauses.
func (b Bool) IsEmpty() bool {
	return len(b.Should) == 0 && len(b.Filter) == 0
}
