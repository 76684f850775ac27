package sqlite

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/embercask/ember"
)

// nativeConn is the slice of the native driver surface the connection
// core touches. *sqlite3.SQLiteConn satisfies it; tests substitute fakes.
type nativeConn interface {
	Prepare(query string) (driver.Stmt, error)
	Exec(query string, args []driver.Value) (driver.Result, error)
	Query(query string, args []driver.Value) (driver.Rows, error)
	Close() error
}

var _ nativeConn = (*sqlite3.SQLiteConn)(nil)

// RawConnection owns one native SQLite handle. It must never be shared:
// letting a reference to the handle or one of its prepared statements
// escape to another goroutine voids the connection's thread-safety
// contract.
type RawConnection struct {
	conn         nativeConn
	rowsAffected int
	onError      func(code int)
}

func establishRaw(url string, config ember.Config) (*RawConnection, error) {
	c, err := (&sqlite3.SQLiteDriver{}).Open(url)
	if err != nil {
		return nil, err
	}
	native, ok := c.(nativeConn)
	if !ok {
		_ = c.Close()
		return nil, errors.New("sqlite: driver connection does not expose exec/query")
	}

	raw := &RawConnection{conn: native, onError: config.OnNativeError()}
	if password, set := config.Password(); set {
		if err := raw.Exec("PRAGMA key = " + quoteLiteral(password)); err != nil {
			_ = native.Close()
			return nil, err
		}
	}
	return raw, nil
}

// Exec executes one or more statements contained in sql and records the
// rows affected by the last one.
func (r *RawConnection) Exec(sql string) error {
	result, err := r.conn.Exec(sql, nil)
	if err != nil {
		return r.convertError(err)
	}
	if result != nil {
		if n, err := result.RowsAffected(); err == nil {
			r.rowsAffected = int(n)
		}
	}
	return nil
}

// RowsAffectedByLastQuery returns the change count recorded by the most
// recent Exec.
func (r *RawConnection) RowsAffectedByLastQuery() int {
	return r.rowsAffected
}

// Prepare compiles sql into a native statement handle.
func (r *RawConnection) Prepare(sql string) (driver.Stmt, error) {
	stmt, err := r.conn.Prepare(sql)
	if err != nil {
		return nil, r.convertError(err)
	}
	return stmt, nil
}

// Rekey re-encrypts the store under password. Any native rejection is
// reported as an UnableToReEncrypt database error.
func (r *RawConnection) Rekey(password string) error {
	if err := r.Exec("PRAGMA rekey = " + quoteLiteral(password)); err != nil {
		var dbErr *ember.DatabaseError
		if errors.As(err, &dbErr) {
			return &ember.DatabaseError{Kind: ember.UnableToReEncrypt, Code: dbErr.Code, Message: dbErr.Message}
		}
		return &ember.DatabaseError{Kind: ember.UnableToReEncrypt, Message: err.Error()}
	}
	return nil
}

// ExecuteForString executes query and renders the result as text, joining
// columns within a row with delimiter and rows with a newline.
func (r *RawConnection) ExecuteForString(query, delimiter string) (string, error) {
	return r.queryForString(query, delimiter, nil)
}

// queryForString is ExecuteForString with positional bind values, for
// statements whose text carries placeholders.
func (r *RawConnection) queryForString(query, delimiter string, binds []driver.Value) (string, error) {
	rows, err := r.conn.Query(query, binds)
	if err != nil {
		return "", r.convertError(err)
	}
	defer rows.Close()

	values := make([]driver.Value, len(rows.Columns()))
	var lines []string
	for {
		err := rows.Next(values)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", r.convertError(err)
		}
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = formatValue(v)
		}
		lines = append(lines, strings.Join(parts, delimiter))
	}
	return strings.Join(lines, "\n"), nil
}

// Close releases the native handle.
func (r *RawConnection) Close() error {
	return r.conn.Close()
}

// convertError maps a native failure to a DatabaseError and fires the
// configured error hook with the native result code.
func (r *RawConnection) convertError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		code := int(sqliteErr.Code)
		if r.onError != nil {
			r.onError(code)
		}
		return &ember.DatabaseError{Code: code, Message: sqliteErr.Error()}
	}
	return err
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func formatValue(v driver.Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}
