// Package query defines the contract between a query builder and a
// database connection.
//
// A connection never inspects a query beyond this contract: a Fragment
// renders itself into SQL text plus an ordered list of bind values, and
// declares whether the rendered text is stable enough for the connection
// to cache the prepared statement.
//
// The package ships only the handful of node types a connection core
// needs; a full query DSL is expected to live in its own module and
// implement Fragment.
//
// # Usage
//
//	q := query.Select(query.Eq(query.Ident("id"), query.Bind(int64(1))))
//
//	var b query.Builder
//	if err := q.WriteSQL(&b); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(b.SQL())   // SELECT "id" = ?
//	fmt.Println(b.Binds()) // [1]
package query
