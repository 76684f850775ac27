package sqlite

import (
	"database/sql/driver"
	"fmt"
	"io"
	"time"
)

// Rows iterates a query's result. It is finite and non-restartable: once
// Next reports false the sequence is over. When the result owns its
// statement (uncacheable query shapes), Close finalizes the statement
// too.
type Rows struct {
	inner  driver.Rows
	owned  *Statement
	cols   []string
	values []driver.Value
	err    error
	done   bool
	closed bool
}

func newRows(inner driver.Rows, owned *Statement) *Rows {
	cols := inner.Columns()
	return &Rows{
		inner:  inner,
		owned:  owned,
		cols:   cols,
		values: make([]driver.Value, len(cols)),
	}
}

// Next advances to the next row.
func (r *Rows) Next() bool {
	if r.done || r.closed {
		return false
	}
	err := r.inner.Next(r.values)
	if err == io.EOF {
		r.done = true
		return false
	}
	if err != nil {
		r.err = err
		r.done = true
		return false
	}
	return true
}

// Scan copies the current row into dest.
func (r *Rows) Scan(dest ...any) error {
	if len(dest) > len(r.values) {
		return fmt.Errorf("sqlite: scan expects at most %d destinations, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		if err := assignValue(d, r.values[i]); err != nil {
			return fmt.Errorf("sqlite: scan column %d: %w", i, err)
		}
	}
	return nil
}

// Columns returns the result's column names.
func (r *Rows) Columns() []string { return r.cols }

// Err returns the first error hit while iterating.
func (r *Rows) Err() error { return r.err }

// Close releases the result and any owned statement. Safe to call twice.
func (r *Rows) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	err := r.inner.Close()
	if r.owned != nil {
		if closeErr := r.owned.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

func assignValue(dest any, value driver.Value) error {
	switch d := dest.(type) {
	case *any:
		*d = value
		return nil
	case *string:
		switch v := value.(type) {
		case string:
			*d = v
		case []byte:
			*d = string(v)
		case int64:
			*d = fmt.Sprintf("%d", v)
		default:
			return fmt.Errorf("cannot assign %T to *string", value)
		}
		return nil
	case *[]byte:
		switch v := value.(type) {
		case []byte:
			*d = v
		case string:
			*d = []byte(v)
		case nil:
			*d = nil
		default:
			return fmt.Errorf("cannot assign %T to *[]byte", value)
		}
		return nil
	case *int:
		if v, ok := value.(int64); ok {
			*d = int(v)
			return nil
		}
		return fmt.Errorf("cannot assign %T to *int", value)
	case *int64:
		if v, ok := value.(int64); ok {
			*d = v
			return nil
		}
		return fmt.Errorf("cannot assign %T to *int64", value)
	case *float64:
		switch v := value.(type) {
		case float64:
			*d = v
		case int64:
			*d = float64(v)
		default:
			return fmt.Errorf("cannot assign %T to *float64", value)
		}
		return nil
	case *bool:
		if v, ok := value.(int64); ok {
			*d = v != 0
			return nil
		}
		if v, ok := value.(bool); ok {
			*d = v
			return nil
		}
		return fmt.Errorf("cannot assign %T to *bool", value)
	case *time.Time:
		if v, ok := value.(time.Time); ok {
			*d = v
			return nil
		}
		return fmt.Errorf("cannot assign %T to *time.Time", value)
	default:
		return fmt.Errorf("unsupported scan destination %T", dest)
	}
}
