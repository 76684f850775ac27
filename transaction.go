package ember

import (
	"errors"
	"fmt"
)

// TransactionManager tracks transaction nesting for one connection. The
// outermost scope is a real transaction; inner scopes are emulated with
// savepoints named by depth so repeated entry and exit at the same level
// cannot collide.
type TransactionManager struct {
	depth int
}

// NewTransactionManager returns a manager at depth 0.
func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

// Depth returns the number of open transaction scopes.
func (m *TransactionManager) Depth() int { return m.depth }

func savepointName(depth int) string {
	return fmt.Sprintf("ember_savepoint_%d", depth)
}

// Begin opens a new scope: BEGIN at depth 0, a savepoint otherwise.
func (m *TransactionManager) Begin(conn SimpleConnection) error {
	var err error
	if m.depth == 0 {
		err = conn.BatchExecute("BEGIN")
	} else {
		err = conn.BatchExecute("SAVEPOINT " + savepointName(m.depth))
	}
	if err != nil {
		return err
	}
	m.depth++
	return nil
}

// Commit closes the innermost scope: COMMIT at depth 1, a savepoint
// release otherwise.
func (m *TransactionManager) Commit(conn SimpleConnection) error {
	var err error
	switch {
	case m.depth == 0:
		return errors.New("ember: no transaction to commit")
	case m.depth == 1:
		err = conn.BatchExecute("COMMIT")
	default:
		err = conn.BatchExecute("RELEASE SAVEPOINT " + savepointName(m.depth - 1))
	}
	if err != nil {
		return err
	}
	m.depth--
	return nil
}

// Rollback undoes the innermost scope: ROLLBACK at depth 1, a rollback to
// the matching savepoint otherwise. Rolling back an inner scope leaves the
// outer scope open and viable.
func (m *TransactionManager) Rollback(conn SimpleConnection) error {
	var err error
	switch {
	case m.depth == 0:
		return errors.New("ember: no transaction to roll back")
	case m.depth == 1:
		err = conn.BatchExecute("ROLLBACK")
	default:
		name := savepointName(m.depth - 1)
		err = conn.BatchExecute("ROLLBACK TO SAVEPOINT " + name + "; RELEASE SAVEPOINT " + name)
	}
	if err != nil {
		return err
	}
	m.depth--
	return nil
}

// Transaction runs body inside a transaction scope. On success the scope
// is committed exactly once and the body's value returned; on failure the
// scope is rolled back exactly once and the body's error returned
// untouched, unless the rollback itself fails, in which case that failure
// is surfaced instead. A panic in body rolls the scope back before
// propagating.
//
// When a transaction is already open, a savepoint emulates the nested
// scope.
func Transaction[T any](conn Connection, body func() (T, error)) (T, error) {
	var zero T
	manager := conn.TransactionManager()
	if err := manager.Begin(conn); err != nil {
		return zero, err
	}

	completed := false
	defer func() {
		if !completed {
			_ = manager.Rollback(conn)
		}
	}()

	value, err := body()
	if err != nil {
		completed = true
		if rollbackErr := manager.Rollback(conn); rollbackErr != nil {
			return zero, rollbackErr
		}
		return zero, err
	}

	completed = true
	if err := manager.Commit(conn); err != nil {
		return zero, err
	}
	return value, nil
}

// BeginTestTransaction opens a transaction that is intended to never be
// committed. Panics if a transaction is already open; calling it
// mid-transaction is harness misuse, not a runtime condition.
func BeginTestTransaction(conn Connection) error {
	manager := conn.TransactionManager()
	if depth := manager.Depth(); depth != 0 {
		panic(fmt.Sprintf("ember: begin test transaction at depth %d, want 0", depth))
	}
	return manager.Begin(conn)
}

// TestTransaction runs body inside a transaction that is always rolled
// back, and returns the body's value. Panics if body failed: test callers
// are assumed to expect success.
func TestTransaction[T any](conn Connection, body func() (T, error)) T {
	var value T
	captured := false
	_, _ = Transaction(conn, func() (struct{}, error) {
		v, err := body()
		if err == nil {
			value = v
			captured = true
		}
		return struct{}{}, ErrRollbackTransaction
	})
	if !captured {
		panic("ember: test transaction body did not succeed")
	}
	return value
}
