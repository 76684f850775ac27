// Package ember provides the connection-management core of an embedded
// database access layer.
//
// ember defines a backend-agnostic Connection contract for talking to a
// relational store, a statement cache that amortizes query-preparation
// cost across repeated executions, and nested-transaction emulation built
// on savepoints. The sqlite subpackage implements the contract against
// SQLite through the native driver interface.
//
// # Quick Start
//
// Open an in-memory database and run a query:
//
//	conn, _ := sqlite.Establish(":memory:", ember.DefaultConfig())
//	defer conn.Close()
//
//	conn.BatchExecute("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")
//	conn.Execute("INSERT INTO users (name) VALUES ('Alice')")
//
//	rows, _ := conn.Query(query.Select(query.Raw("name FROM users")))
//	defer rows.Close()
//	for rows.Next() {
//	    var name string
//	    rows.Scan(&name)
//	    fmt.Println(name)
//	}
//
// # Transactions
//
// Transaction commits on success and rolls back on failure; nested calls
// are emulated with savepoints:
//
//	n, err := ember.Transaction(conn, func() (int, error) {
//	    return conn.Execute("UPDATE users SET name = 'Bob' WHERE id = 1")
//	})
//
// # Ownership
//
// A Connection exclusively owns its native handle, statement cache, and
// transaction state. It may be handed between goroutines as a whole but
// never used from two at once.
package ember
