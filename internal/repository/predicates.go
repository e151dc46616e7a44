package repository

import (
	"fmt"
	"strconv"
	"strings"
)

// PredicateOrigin records where a filter condition came from, so tests
// can tell role-derived scoping apart from caller-supplied filters.
type PredicateOrigin string

const (
	OriginRoleRule   PredicateOrigin = "role_rule"
	OriginUserFilter PredicateOrigin = "user_filter"
)

// Predicate is one typed filter condition. Predicates accumulate into a
// PredicateList and combine with AND; the variable-length string
// concatenation of the legacy queries is not reproduced here.
type Predicate struct {
	Origin PredicateOrigin
	render func(args *[]any) string
}

// SQL renders the condition, appending its bind values to args.
func (p Predicate) SQL(args *[]any) string {
	return p.render(args)
}

func bind(args *[]any, value any) string {
	*args = append(*args, value)
	return "$" + strconv.Itoa(len(*args))
}

// ColumnEq matches column = value.
func ColumnEq(origin PredicateOrigin, column string, value any) Predicate {
	return Predicate{Origin: origin, render: func(args *[]any) string {
		return fmt.Sprintf("%s = %s", column, bind(args, value))
	}}
}

// ColumnNe matches column <> value.
func ColumnNe(origin PredicateOrigin, column string, value any) Predicate {
	return Predicate{Origin: origin, render: func(args *[]any) string {
		return fmt.Sprintf("%s <> %s", column, bind(args, value))
	}}
}

// ColumnIn matches column against any of the values.
func ColumnIn(origin PredicateOrigin, column string, values ...any) Predicate {
	return Predicate{Origin: origin, render: func(args *[]any) string {
		placeholders := make([]string, len(values))
		for i, v := range values {
			placeholders[i] = bind(args, v)
		}
		return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ","))
	}}
}

// SearchTerm matches the term case-insensitively against the given text
// columns, plus the lead id rendered as text.
func SearchTerm(origin PredicateOrigin, term string, columns ...string) Predicate {
	return Predicate{Origin: origin, render: func(args *[]any) string {
		pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
		placeholder := bind(args, pattern)
		parts := make([]string, 0, len(columns)+1)
		for _, col := range columns {
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE %s", col, placeholder))
		}
		parts = append(parts, fmt.Sprintf("CAST(id AS TEXT) LIKE %s", placeholder))
		return "(" + strings.Join(parts, " OR ") + ")"
	}}
}

// DateOnOrAfter compares the column's date part against an ISO date.
func DateOnOrAfter(origin PredicateOrigin, column, isoDate string) Predicate {
	return Predicate{Origin: origin, render: func(args *[]any) string {
		return fmt.Sprintf("CAST(%s AS DATE) >= CAST(%s AS DATE)", column, bind(args, isoDate))
	}}
}

// DateOnOrBefore compares the column's date part against an ISO date.
func DateOnOrBefore(origin PredicateOrigin, column, isoDate string) Predicate {
	return Predicate{Origin: origin, render: func(args *[]any) string {
		return fmt.Sprintf("CAST(%s AS DATE) <= CAST(%s AS DATE)", column, bind(args, isoDate))
	}}
}

// PredicateList is an AND-combined set of conditions.
type PredicateList []Predicate

// WhereClause renders the list; an empty list matches everything.
func (l PredicateList) WhereClause(args *[]any) string {
	if len(l) == 0 {
		return "1=1"
	}
	parts := make([]string, len(l))
	for i, p := range l {
		parts[i] = p.SQL(args)
	}
	return strings.Join(parts, " AND ")
}

// ByOrigin returns the subset of predicates with the given origin.
func (l PredicateList) ByOrigin(origin PredicateOrigin) PredicateList {
	var out PredicateList
	for _, p := range l {
		if p.Origin == origin {
			out = append(out, p)
		}
	}
	return out
}
