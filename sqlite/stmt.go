package sqlite

import "database/sql/driver"

// Statement is a prepared native statement. Statements borrowed from the
// connection's cache are finalized by the cache at connection close;
// owned statements are finalized by the call that built them.
type Statement struct {
	raw   *RawConnection
	inner driver.Stmt
	sql   string
}

func prepareStatement(raw *RawConnection, sql string) (*Statement, error) {
	inner, err := raw.Prepare(sql)
	if err != nil {
		return nil, err
	}
	return &Statement{raw: raw, inner: inner, sql: sql}, nil
}

// SQL returns the text the statement was prepared from.
func (s *Statement) SQL() string { return s.sql }

// Exec binds binds in placeholder order, runs the statement, and reports
// the rows affected.
func (s *Statement) Exec(binds []driver.Value) (int, error) {
	result, err := s.inner.Exec(binds)
	if err != nil {
		return 0, s.raw.convertError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	s.raw.rowsAffected = int(n)
	return int(n), nil
}

// Query binds binds in placeholder order and steps the statement,
// returning the native result rows.
func (s *Statement) Query(binds []driver.Value) (driver.Rows, error) {
	rows, err := s.inner.Query(binds)
	if err != nil {
		return nil, s.raw.convertError(err)
	}
	return rows, nil
}

// Close finalizes the statement.
func (s *Statement) Close() error {
	return s.inner.Close()
}
