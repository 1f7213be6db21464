// Package duckdb stores interval sets in DuckDB tables so they can be
// loaded back into a container or queried with SQL.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding interval tables.
type Store struct {
	db   *sql.DB
	path string
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSources(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureTable creates an interval table if it doesn't exist.
func (s *Store) ensureTable(table string) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS ` + table + ` (
		chrom VARCHAR,
		start BIGINT,
		end_ BIGINT,
		name VARCHAR,
		score DOUBLE,
		strand TINYINT
	)`)
	return err
}
