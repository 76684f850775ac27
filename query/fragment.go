package query

import (
	"database/sql/driver"
	"strings"
)

// Fragment is a piece of a query that can render itself into SQL text and
// bind values.
type Fragment interface {
	// WriteSQL appends this fragment's SQL text and bind values to b.
	// Rendering must be deterministic: the same fragment always produces
	// the same text.
	WriteSQL(b *Builder) error

	// SafeToCache reports whether a statement prepared from this
	// fragment's rendered SQL may be reused for every future fragment
	// with the same fingerprint. Fragments whose text or bind count can
	// change between invocations must return false.
	SafeToCache() bool
}

// Identified is implemented by fragments that carry a static identity
// marker, letting the cache key on identity rather than re-rendered text
// alone.
type Identified interface {
	QueryID() string
}

// Builder accumulates rendered SQL text and the bind values collected
// along the way. The zero value is ready to use.
type Builder struct {
	sql   strings.Builder
	binds []driver.Value
}

// WriteSQL appends raw SQL text.
func (b *Builder) WriteSQL(s string) {
	b.sql.WriteString(s)
}

// WriteIdent appends a double-quoted identifier.
func (b *Builder) WriteIdent(name string) {
	b.sql.WriteByte('"')
	b.sql.WriteString(strings.ReplaceAll(name, `"`, `""`))
	b.sql.WriteByte('"')
}

// AddBind appends a placeholder to the SQL text and records the value to
// be bound at that position.
func (b *Builder) AddBind(v driver.Value) {
	b.sql.WriteByte('?')
	b.binds = append(b.binds, v)
}

// SQL returns the text rendered so far.
func (b *Builder) SQL() string {
	return b.sql.String()
}

// Binds returns the bind values collected so far, in placeholder order.
func (b *Builder) Binds() []driver.Value {
	return b.binds
}

// Fingerprint identifies a query's static shape. Two fragments with equal
// fingerprints must be satisfiable by the same prepared statement.
type Fingerprint struct {
	ID  string // static identity marker, empty when the fragment has none
	SQL string // rendered SQL text
}

// FingerprintOf derives the fingerprint for a fragment whose SQL has
// already been rendered.
func FingerprintOf(source Fragment, sql string) Fingerprint {
	fp := Fingerprint{SQL: sql}
	if id, ok := source.(Identified); ok {
		fp.ID = id.QueryID()
	}
	return fp
}
