package ember

import (
	"errors"
	"fmt"
)

// ErrRollbackTransaction forces Transaction to roll back the current scope
// without treating the body as failed for any other purpose. It is never
// surfaced past Transaction or TestTransaction unless the body returns it
// directly.
var ErrRollbackTransaction = errors.New("ember: rollback transaction")

// ErrConnectionClosed is returned when an operation is attempted on a
// closed connection.
var ErrConnectionClosed = errors.New("ember: connection is closed")

// ConnectionError reports a failure to establish a connection: a bad URL,
// an unopenable store, or a rejected key.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("ember: unable to establish connection to %q: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// DatabaseErrorKind classifies native-layer execution failures.
type DatabaseErrorKind int

const (
	UnknownDatabaseError DatabaseErrorKind = iota
	UnableToReEncrypt
)

func (k DatabaseErrorKind) String() string {
	switch k {
	case UnableToReEncrypt:
		return "unable to re-encrypt"
	default:
		return "database error"
	}
}

// DatabaseError reports a failure from the native layer. Code carries the
// native result code when one is known, 0 otherwise.
type DatabaseError struct {
	Kind    DatabaseErrorKind
	Code    int
	Message string
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("ember: %s: %s", e.Kind, e.Message)
}
