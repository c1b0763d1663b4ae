// Package store implements the relational task store over database/sql.
// It supports the pure-Go sqlite driver (default) and postgres via lib/pq,
// selected by configuration.
package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/taskforge/taskd/pkg/types"
)

// Schema DDL per driver. The layouts are identical apart from the
// autoincrement primary key syntax.
const (
	schemaSQLite = `CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title VARCHAR(255) NOT NULL,
    description VARCHAR(500),
    status VARCHAR(100) NOT NULL,
    due_date DATE
);`

	schemaPostgres = `CREATE TABLE IF NOT EXISTS tasks (
    id BIGSERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description VARCHAR(500),
    status VARCHAR(100) NOT NULL,
    due_date DATE
);`
)

// Store provides task persistence over a single relational table.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the configured database, verifies the connection, and
// bootstraps the tasks table if it does not exist.
func Open(cfg types.DatabaseConfig) (*Store, error) {
	var driverName, schema string
	switch cfg.Driver {
	case types.DriverSQLite:
		driverName, schema = "sqlite", schemaSQLite
	case types.DriverPostgres:
		driverName, schema = "postgres", schemaPostgres
	default:
		return nil, types.ErrDriverUnknown
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, driver: cfg.Driver}, nil
}

// Close releases the underlying database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres. The sqlite driver
// takes ? as-is.
func (s *Store) rebind(query string) string {
	if s.driver != types.DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
