package ember

import "github.com/embercask/ember/query"

// SimpleConnection executes SQL text directly against the backend. This is
// the minimal surface the transaction manager drives, and the path
// migrations and other multi-statement scripts take.
type SimpleConnection interface {
	// BatchExecute executes one or more SQL statements contained in sql,
	// bypassing the statement cache. No result rows are returned.
	BatchExecute(sql string) error
}

// Rows is a lazily-materialized, finite, non-restartable sequence of
// result rows. Callers must Close it when done; closing releases any
// statement owned by the sequence.
type Rows interface {
	// Next advances to the next row, reporting false when the sequence is
	// exhausted or a read failed. Check Err after Next returns false.
	Next() bool

	// Scan copies the current row's columns into dest, converting backend
	// values to the pointed-to Go types.
	Scan(dest ...any) error

	// Columns returns the column names of the result.
	Columns() []string

	// Err returns the first error encountered while iterating.
	Err() error

	// Close releases the underlying result and, for statements owned by
	// this sequence, the statement itself.
	Close() error
}

// Connection is a single live database session. A Connection is not safe
// for concurrent use: its statement cache and transaction depth are
// unsynchronized, so it may be handed between goroutines only as a whole,
// never used from two at once.
type Connection interface {
	SimpleConnection

	// Execute runs a single statement and reports the number of rows
	// affected.
	Execute(sql string) (int, error)

	// Query renders source, prepares it (through the statement cache when
	// the shape allows), binds its parameters, and returns the result
	// rows.
	Query(source query.Fragment) (Rows, error)

	// ExecuteReturningCount runs source the same way Query does but
	// discards rows, reporting only the number of rows affected.
	ExecuteReturningCount(source query.Fragment) (int, error)

	// TransactionManager exposes this connection's transaction state.
	TransactionManager() *TransactionManager

	// Close releases every cached statement and the native handle.
	// Closing an already-closed connection is a no-op.
	Close() error
}
