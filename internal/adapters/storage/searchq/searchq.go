// Package searchq builds SQL search predicates for list screens.
//
// A Builder is configured once per store with the searchable columns for
// that screen. Build then turns a free-text query into a WHERE fragment of
// OR-ed case-insensitive substring matches, plus positional args. An empty
// query produces a match-all predicate so callers never branch.
package searchq

import (
	"strings"
)

// Builder describes the searchable surface of one list screen.
type Builder struct {
	fields  []string
	raws    []string
	aliases []aliasRule
}

type aliasRule struct {
	column    string
	canonical string
	tokens    map[string]bool
}

// Predicate is a ready-to-embed WHERE fragment with its bind args.
type Predicate struct {
	Clause string
	Args   []any
}

// MatchAll reports whether the predicate places no restriction on rows.
func (p Predicate) MatchAll() bool {
	return p.Clause == "1=1"
}

// New creates a Builder matching against the given column names.
// PRE: each field is a trusted column reference, never user input
func New(fields ...string) *Builder {
	return &Builder{fields: fields}
}

// WithRaw adds a raw SQL expression to match against, e.g. a concatenation
// of name columns or a strftime over a date column. The expression is
// compared with LIKE the same way plain columns are.
// PRE: expr is a trusted SQL expression, never user input
func (b *Builder) WithRaw(expr string) *Builder {
	b.raws = append(b.raws, expr)
	return b
}

// WithAlias maps spelling variants of a stored value onto an exact-equality
// clause. When the whole query (trimmed, lowercased) equals one of the
// tokens, the predicate also matches rows where column = canonical.
// PRE: column and canonical are trusted values, never user input
func (b *Builder) WithAlias(column, canonical string, tokens ...string) *Builder {
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[strings.ToLower(strings.TrimSpace(tok))] = true
	}
	b.aliases = append(b.aliases, aliasRule{column: column, canonical: canonical, tokens: set})
	return b
}

// Build turns a free-text query into a predicate.
// POST: empty or whitespace query yields a match-all predicate;
// otherwise clauses are OR-ed and len(Args) equals the number of clauses
func (b *Builder) Build(query string) Predicate {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return Predicate{Clause: "1=1"}
	}

	needle := "%" + strings.ToLower(trimmed) + "%"
	var clauses []string
	var args []any

	for _, f := range b.fields {
		clauses = append(clauses, "LOWER("+f+") LIKE ?")
		args = append(args, needle)
	}
	for _, r := range b.raws {
		clauses = append(clauses, "LOWER("+r+") LIKE ?")
		args = append(args, needle)
	}
	lowered := strings.ToLower(trimmed)
	for _, a := range b.aliases {
		if a.tokens[lowered] {
			clauses = append(clauses, a.column+" = ?")
			args = append(args, a.canonical)
		}
	}

	return Predicate{Clause: "(" + strings.Join(clauses, " OR ") + ")", Args: args}
}
