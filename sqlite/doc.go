// Package sqlite implements the ember connection contract against SQLite
// through the native driver interface.
//
// The package drives mattn/go-sqlite3 at the driver level rather than
// through database/sql: pooling would break the single-owner contract a
// connection's statement cache and transaction depth rely on. Each
// Connection exclusively owns one native handle; prepared statements
// never escape it.
//
// # Usage
//
//	config := ember.NewConfigBuilder().LogQuery(true).Build()
//	conn, err := sqlite.Establish("app.db", config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
// The connection string is a filesystem path, or ":memory:" for an
// in-memory database.
package sqlite
