package repository

import (
	"strings"
	"testing"
)

func TestWhereClauseEmptyMatchesEverything(t *testing.T) {
	args := []any{}
	got := PredicateList{}.WhereClause(&args)
	if got != "1=1" {
		t.Errorf("WhereClause() = %q, want 1=1", got)
	}
	if len(args) != 0 {
		t.Errorf("expected no bind args, got %d", len(args))
	}
}

func TestWhereClauseCombinesWithAnd(t *testing.T) {
	preds := PredicateList{
		ColumnEq(OriginRoleRule, "created_by", int64(7)),
		ColumnEq(OriginUserFilter, "status", int64(2)),
	}

	args := []any{}
	got := preds.WhereClause(&args)

	if got != "created_by = $1 AND status = $2" {
		t.Errorf("WhereClause() = %q", got)
	}
	if len(args) != 2 || args[0] != int64(7) || args[1] != int64(2) {
		t.Errorf("args = %v", args)
	}
}

func TestColumnIn(t *testing.T) {
	args := []any{}
	got := ColumnIn(OriginRoleRule, "status", int64(1), int64(2)).SQL(&args)

	if got != "status IN ($1,$2)" {
		t.Errorf("SQL() = %q", got)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestColumnNe(t *testing.T) {
	args := []any{}
	got := ColumnNe(OriginRoleRule, "status", int64(4)).SQL(&args)
	if got != "status <> $1" {
		t.Errorf("SQL() = %q", got)
	}
}

func TestSearchTermCoversIDColumn(t *testing.T) {
	args := []any{}
	got := SearchTerm(OriginUserFilter, "  Smith ", "first_name", "last_name").SQL(&args)

	if !strings.Contains(got, "LOWER(first_name) LIKE $1") {
		t.Errorf("missing first_name clause: %q", got)
	}
	if !strings.Contains(got, "CAST(id AS TEXT) LIKE $1") {
		t.Errorf("missing id clause: %q", got)
	}
	if len(args) != 1 {
		t.Fatalf("expected a single shared bind arg, got %d", len(args))
	}
	if args[0] != "%smith%" {
		t.Errorf("pattern = %v, want %%smith%%", args[0])
	}
}

func TestDatePredicates(t *testing.T) {
	args := []any{}
	after := DateOnOrAfter(OriginUserFilter, "created_at", "2025-01-01").SQL(&args)
	before := DateOnOrBefore(OriginUserFilter, "created_at", "2025-01-31").SQL(&args)

	if after != "CAST(created_at AS DATE) >= CAST($1 AS DATE)" {
		t.Errorf("after = %q", after)
	}
	if before != "CAST(created_at AS DATE) <= CAST($2 AS DATE)" {
		t.Errorf("before = %q", before)
	}
}

func TestByOrigin(t *testing.T) {
	preds := PredicateList{
		ColumnEq(OriginRoleRule, "created_by", int64(7)),
		ColumnEq(OriginUserFilter, "status", int64(2)),
		ColumnNe(OriginRoleRule, "status", int64(4)),
	}

	if got := len(preds.ByOrigin(OriginRoleRule)); got != 2 {
		t.Errorf("role rules = %d, want 2", got)
	}
	if got := len(preds.ByOrigin(OriginUserFilter)); got != 1 {
		t.Errorf("user filters = %d, want 1", got)
	}
}
