package sqlite

import (
	"database/sql/driver"

	"go.uber.org/zap"

	"github.com/embercask/ember"
	"github.com/embercask/ember/query"
)

// probeQuery is the trivial liveness check. It is exempt from query
// logging and explain capture.
const probeQuery = "SELECT 1"

// Connection is one live SQLite session: a native handle, a statement
// cache, and transaction state, all exclusively owned. Not safe for
// concurrent use; hand it between goroutines only as a whole.
type Connection struct {
	raw     *RawConnection
	cache   *ember.StatementCache[*Statement]
	manager *ember.TransactionManager
	config  ember.Config
	logger  *zap.Logger
	closed  bool
}

var _ ember.Connection = (*Connection)(nil)

// Establish opens the database at url, which is a filesystem path or
// ":memory:". A password in config keys the store at open time.
func Establish(url string, config ember.Config) (*Connection, error) {
	raw, err := establishRaw(url, config)
	if err != nil {
		return nil, &ember.ConnectionError{URL: url, Err: err}
	}
	return &Connection{
		raw:     raw,
		cache:   ember.NewStatementCache[*Statement](),
		manager: ember.NewTransactionManager(),
		config:  config,
		logger:  config.Logger(),
	}, nil
}

// BatchExecute executes one or more statements in sql directly against
// the native handle, bypassing the statement cache. This is the path for
// migrations and other DDL scripts.
func (c *Connection) BatchExecute(sql string) error {
	if c.closed {
		return ember.ErrConnectionClosed
	}
	return c.raw.Exec(sql)
}

// Execute runs a single statement and reports the rows affected.
func (c *Connection) Execute(sql string) (int, error) {
	if c.closed {
		return 0, ember.ErrConnectionClosed
	}
	finish := c.startQueryLog(sql)
	defer finish()
	if err := c.explainQuery(sql, nil); err != nil {
		return 0, err
	}
	if err := c.raw.Exec(sql); err != nil {
		return 0, err
	}
	return c.raw.RowsAffectedByLastQuery(), nil
}

// Query prepares source (through the cache when its shape allows), binds
// its parameters, and returns the result rows. The caller must close the
// returned rows.
func (c *Connection) Query(source query.Fragment) (ember.Rows, error) {
	statement, binds, sqlText, err := c.prepareQuery(source)
	if err != nil {
		return nil, err
	}
	var owned *Statement
	if !statement.Cached() {
		owned = statement.Statement
	}

	if err := c.explainQuery(sqlText, binds); err != nil {
		if owned != nil {
			_ = owned.Close()
		}
		return nil, err
	}

	finish := c.startQueryLog(sqlText)
	rows, err := statement.Statement.Query(binds)
	finish()
	if err != nil {
		if owned != nil {
			_ = owned.Close()
		}
		return nil, err
	}
	return newRows(rows, owned), nil
}

// ExecuteReturningCount runs source the same way Query does but discards
// rows, reporting only the rows affected.
func (c *Connection) ExecuteReturningCount(source query.Fragment) (int, error) {
	statement, binds, sqlText, err := c.prepareQuery(source)
	if err != nil {
		return 0, err
	}
	if !statement.Cached() {
		defer statement.Statement.Close()
	}

	if err := c.explainQuery(sqlText, binds); err != nil {
		return 0, err
	}

	finish := c.startQueryLog(sqlText)
	defer finish()
	return statement.Statement.Exec(binds)
}

func (c *Connection) prepareQuery(source query.Fragment) (ember.MaybeCached[*Statement], []driver.Value, string, error) {
	if c.closed {
		return ember.MaybeCached[*Statement]{}, nil, "", ember.ErrConnectionClosed
	}

	var b query.Builder
	if err := source.WriteSQL(&b); err != nil {
		return ember.MaybeCached[*Statement]{}, nil, "", err
	}
	sqlText := b.SQL()

	statement, err := c.cache.CachedStatement(
		query.FingerprintOf(source, sqlText),
		source.SafeToCache(),
		func() (*Statement, error) { return prepareStatement(c.raw, sqlText) },
	)
	if err != nil {
		return ember.MaybeCached[*Statement]{}, nil, "", err
	}
	return statement, b.Binds(), sqlText, nil
}

// Ping runs the probe query to verify the handle is alive.
func (c *Connection) Ping() error {
	_, err := c.Execute(probeQuery)
	return err
}

// ChangePassword re-keys the underlying encrypted store.
func (c *Connection) ChangePassword(newPassword string) error {
	if c.closed {
		return ember.ErrConnectionClosed
	}
	return c.raw.Rekey(newPassword)
}

// ExecuteForString executes q and renders the result as text, joining
// columns with delimiter and rows with a newline. Used for
// introspection-style queries such as reading pragmas.
func (c *Connection) ExecuteForString(q, delimiter string) (string, error) {
	if c.closed {
		return "", ember.ErrConnectionClosed
	}
	return c.raw.ExecuteForString(q, delimiter)
}

// TransactionManager exposes this connection's transaction state.
func (c *Connection) TransactionManager() *ember.TransactionManager {
	return c.manager
}

// Close finalizes every cached statement and releases the native handle.
// Closing twice is a no-op.
func (c *Connection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.cache.Each(func(s *Statement) { _ = s.Close() })
	c.cache.Clear()
	return c.raw.Close()
}
