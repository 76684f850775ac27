package query

import (
	"database/sql/driver"
	"testing"
)

func render(t *testing.T, f Fragment) (string, []driver.Value) {
	var b Builder
	if err := f.WriteSQL(&b); err != nil {
		t.Fatalf("Failed to render fragment: %v", err)
	}
	return b.SQL(), b.Binds()
}

func TestSelectRendersBinds(t *testing.T) {
	q := Select(Bind(int64(1)))

	sql, binds := render(t, q)
	if sql != "SELECT ?" {
		t.Errorf("Expected 'SELECT ?', got %q", sql)
	}
	if len(binds) != 1 || binds[0] != int64(1) {
		t.Errorf("Expected binds [1], got %v", binds)
	}
	if !q.SafeToCache() {
		t.Error("Expected bind-only select to be cacheable")
	}
}

func TestRawIsNeverCacheable(t *testing.T) {
	q := Select(Raw("1"))

	sql, binds := render(t, q)
	if sql != "SELECT 1" {
		t.Errorf("Expected 'SELECT 1', got %q", sql)
	}
	if len(binds) != 0 {
		t.Errorf("Expected no binds, got %v", binds)
	}
	if q.SafeToCache() {
		t.Error("Raw text must disqualify the whole query from caching")
	}
}

func TestEqPropagatesCacheability(t *testing.T) {
	cacheable := Eq(Bind(int64(1)), Bind(int64(1)))
	if !cacheable.SafeToCache() {
		t.Error("Expected bind = bind to be cacheable")
	}

	tainted := Eq(Bind(int64(1)), Raw("1"))
	if tainted.SafeToCache() {
		t.Error("Expected bind = raw to be uncacheable")
	}
}

func TestInListRendersOnePlaceholderPerValue(t *testing.T) {
	q := In(Bind(int64(1)), int64(1), int64(2), int64(3))

	sql, binds := render(t, q)
	if sql != "? IN (?, ?, ?)" {
		t.Errorf("Unexpected SQL: %q", sql)
	}
	if len(binds) != 4 {
		t.Errorf("Expected 4 binds, got %d", len(binds))
	}
	if q.SafeToCache() {
		t.Error("IN over a runtime list must not be cacheable")
	}
}

func TestInEmptyListRendersConstantFalse(t *testing.T) {
	q := In(Bind(int64(1)))

	sql, binds := render(t, q)
	if sql != "1=0" {
		t.Errorf("Expected '1=0', got %q", sql)
	}
	if len(binds) != 0 {
		t.Errorf("Expected no binds, got %v", binds)
	}
}

func TestInSubqueryIsCacheable(t *testing.T) {
	q := InSubquery(Bind(int64(1)), Select(Bind(int64(1))))

	sql, _ := render(t, q)
	if sql != "? IN (SELECT ?)" {
		t.Errorf("Unexpected SQL: %q", sql)
	}
	if !q.SafeToCache() {
		t.Error("IN over a subquery renders fixed SQL and must be cacheable")
	}
}

func TestIdentQuoting(t *testing.T) {
	sql, _ := render(t, Ident(`weird"name`))
	if sql != `"weird""name"` {
		t.Errorf("Unexpected identifier quoting: %q", sql)
	}
}

func TestFingerprintUsesQueryID(t *testing.T) {
	plain := Select(Bind(int64(1)))
	fp := FingerprintOf(plain, "SELECT ?")
	if fp.ID != "" {
		t.Errorf("Expected empty ID for anonymous fragment, got %q", fp.ID)
	}
	if fp.SQL != "SELECT ?" {
		t.Errorf("Expected SQL text in fingerprint, got %q", fp.SQL)
	}

	named := identifiedFragment{Fragment: plain, id: "users.by_id"}
	fp = FingerprintOf(named, "SELECT ?")
	if fp.ID != "users.by_id" {
		t.Errorf("Expected identity marker, got %q", fp.ID)
	}
}

type identifiedFragment struct {
	Fragment
	id string
}

func (f identifiedFragment) QueryID() string { return f.id }
