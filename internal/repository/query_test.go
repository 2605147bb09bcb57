package repository

import (
	"errors"
	"testing"

	"github.com/afriride/travel-booking/internal/store"
)

func TestClauses(t *testing.T) {
	cols := newColumns("customer_email", "created_at", "booking_type")

	sql, args, err := cols.clauses(store.Query{}.
		Eq("customer_email", "ana@example.com").
		Eq("booking_type", "tour").
		OrderBy(store.Desc("created_at")))
	if err != nil {
		t.Fatal(err)
	}
	want := " WHERE customer_email = ? AND booking_type = ? ORDER BY created_at DESC"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 || args[0] != "ana@example.com" || args[1] != "tour" {
		t.Fatalf("args = %v", args)
	}

	sql, args, err = cols.clauses(store.Query{})
	if err != nil || sql != "" || len(args) != 0 {
		t.Fatalf("empty query: %q %v %v", sql, args, err)
	}
}

func TestClausesRejectUnknownColumns(t *testing.T) {
	cols := newColumns("rating")
	if _, _, err := cols.clauses(store.Query{}.Eq("1=1 OR id", "x")); !errors.Is(err, store.ErrUnsupportedColumn) {
		t.Fatalf("filter: want ErrUnsupportedColumn, got %v", err)
	}
	if _, _, err := cols.clauses(store.Query{}.OrderBy(store.Asc("name"))); !errors.Is(err, store.ErrUnsupportedColumn) {
		t.Fatalf("order: want ErrUnsupportedColumn, got %v", err)
	}
}
