//go:build comparative

package tests

import (
	"database/sql"
	"strconv"
	"testing"

	"github.com/embercask/ember"
	"github.com/embercask/ember/query"
	"github.com/embercask/ember/sqlite"

	_ "github.com/duckdb/duckdb-go/v2"
)

// ============================================================================
// SETUP FUNCTIONS
// ============================================================================

// setupEmber creates an ember SQLite connection with test data
func setupEmber(b *testing.B) *sqlite.Connection {
	conn, err := sqlite.Establish(":memory:", ember.DefaultConfig())
	if err != nil {
		b.Fatalf("Failed to establish connection: %v", err)
	}
	b.Cleanup(func() { conn.Close() })

	if err := conn.BatchExecute("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, age INTEGER, city TEXT)"); err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}

	for i := 1; i <= 1000; i++ {
		_, err := conn.Execute("INSERT INTO users (id, name, age, city) VALUES (" +
			strconv.Itoa(i) + ", 'User" + strconv.Itoa(i) + "', " + strconv.Itoa(20+i%50) + ", 'City" + strconv.Itoa(i%10) + "')")
		if err != nil {
			b.Fatalf("Failed to insert: %v", err)
		}
	}

	return conn
}

// setupDuckDB creates a DuckDB instance with identical test data
func setupDuckDB(b *testing.B) *sql.DB {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		b.Fatalf("Failed to open DuckDB: %v", err)
	}

	_, err = db.Exec("CREATE TABLE users (id INTEGER PRIMARY KEY, name VARCHAR, age INTEGER, city VARCHAR)")
	if err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}

	// Insert 1000 records
	for i := 1; i <= 1000; i++ {
		_, err = db.Exec("INSERT INTO users VALUES (?, ?, ?, ?)",
			i, "User"+strconv.Itoa(i), 20+i%50, "City"+strconv.Itoa(i%10))
		if err != nil {
			b.Fatalf("Failed to insert: %v", err)
		}
	}

	return db
}

func consumeEmber(b *testing.B, rows ember.Rows) {
	for rows.Next() {
		var id, age int64
		var name, city string
		rows.Scan(&id, &name, &age, &city)
	}
	rows.Close()
}

// ============================================================================
// SELECT ALL BENCHMARKS
// ============================================================================

func BenchmarkEmber_SelectAll(b *testing.B) {
	conn := setupEmber(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows, err := conn.Query(query.Raw("SELECT * FROM users"))
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
		consumeEmber(b, rows)
	}
}

func BenchmarkDuckDB_SelectAll(b *testing.B) {
	db := setupDuckDB(b)
	defer db.Close()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows, err := db.Query("SELECT * FROM users")
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
		for rows.Next() {
			var id, age int
			var name, city string
			rows.Scan(&id, &name, &age, &city)
		}
		rows.Close()
	}
}

// ============================================================================
// SELECT WITH WHERE BENCHMARKS
// ============================================================================

func BenchmarkEmber_SelectWhere(b *testing.B) {
	conn := setupEmber(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows, err := conn.Query(query.Raw("SELECT * FROM users WHERE age > 40"))
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
		consumeEmber(b, rows)
	}
}

func BenchmarkDuckDB_SelectWhere(b *testing.B) {
	db := setupDuckDB(b)
	defer db.Close()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows, err := db.Query("SELECT * FROM users WHERE age > 40")
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
		for rows.Next() {
			var id, age int
			var name, city string
			rows.Scan(&id, &name, &age, &city)
		}
		rows.Close()
	}
}

// ============================================================================
// AGGREGATE BENCHMARKS
// ============================================================================

func BenchmarkEmber_Count(b *testing.B) {
	conn := setupEmber(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := conn.ExecuteForString("SELECT COUNT(*) FROM users", "")
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
	}
}

func BenchmarkDuckDB_Count(b *testing.B) {
	db := setupDuckDB(b)
	defer db.Close()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
	}
}

func BenchmarkEmber_GroupBy(b *testing.B) {
	conn := setupEmber(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := conn.ExecuteForString("SELECT city, COUNT(*), AVG(age) FROM users GROUP BY city", "|")
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
	}
}

func BenchmarkDuckDB_GroupBy(b *testing.B) {
	db := setupDuckDB(b)
	defer db.Close()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows, err := db.Query("SELECT city, COUNT(*), AVG(age) FROM users GROUP BY city")
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
		for rows.Next() {
			var city string
			var count int
			var avg float64
			rows.Scan(&city, &count, &avg)
		}
		rows.Close()
	}
}

// ============================================================================
// INSERT BENCHMARKS
// ============================================================================

func BenchmarkEmber_Insert(b *testing.B) {
	conn, err := sqlite.Establish(":memory:", ember.DefaultConfig())
	if err != nil {
		b.Fatalf("Failed to establish connection: %v", err)
	}
	b.Cleanup(func() { conn.Close() })
	conn.BatchExecute("CREATE TABLE items (id INTEGER PRIMARY KEY, value TEXT)")

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := conn.Execute("INSERT INTO items (id, value) VALUES (" +
			strconv.Itoa(i) + ", 'value" + strconv.Itoa(i) + "')")
		if err != nil {
			b.Fatalf("Insert error: %v", err)
		}
	}
}

func BenchmarkDuckDB_Insert(b *testing.B) {
	db, _ := sql.Open("duckdb", "")
	defer db.Close()
	db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, value VARCHAR)")

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := db.Exec("INSERT INTO items VALUES (?, ?)", i, "value"+strconv.Itoa(i))
		if err != nil {
			b.Fatalf("Insert error: %v", err)
		}
	}
}

// ============================================================================
// COMPLEX QUERY BENCHMARKS
// ============================================================================

func BenchmarkEmber_Complex(b *testing.B) {
	conn := setupEmber(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows, err := conn.Query(query.Raw("SELECT * FROM users WHERE age > 30 AND city = 'City5' ORDER BY age DESC LIMIT 20"))
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
		consumeEmber(b, rows)
	}
}

func BenchmarkDuckDB_Complex(b *testing.B) {
	db := setupDuckDB(b)
	defer db.Close()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows, err := db.Query("SELECT * FROM users WHERE age > 30 AND city = 'City5' ORDER BY age DESC LIMIT 20")
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
		for rows.Next() {
			var id, age int
			var name, city string
			rows.Scan(&id, &name, &age, &city)
		}
		rows.Close()
	}
}
