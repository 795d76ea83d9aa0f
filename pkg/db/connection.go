package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// busyTimeoutMillis bounds how long a statement waits on another process
// holding the database lock.
const busyTimeoutMillis = 1000

// Connection is a SQLite database holding the journal blob and/or the export history.
type Connection struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the SQLite file at path and applies the schema.
// The pool holds a single connection: the journal has exactly one writer.
func Open(path string) (*Connection, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	conn := &Connection{db: sqlDB, path: path}
	if err := conn.init(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return conn, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", fmt.Sprint(busyTimeoutMillis))
	return "file:" + path + "?" + q.Encode()
}

func (c *Connection) init() error {
	if err := c.db.Ping(); err != nil {
		return fmt.Errorf("failed to reach database %s: %w", c.path, err)
	}
	if err := InitializeSchema(c); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (c *Connection) Path() string {
	return c.path
}

// Close closes the database.
func (c *Connection) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Query runs a statement that returns rows.
func (c *Connection) Query(query string, args ...any) (*sql.Rows, error) {
	return c.db.Query(query, args...)
}

// QueryRow runs a statement that returns at most one row.
func (c *Connection) QueryRow(query string, args ...any) *sql.Row {
	return c.db.QueryRow(query, args...)
}

// Exec runs a statement that returns no rows.
func (c *Connection) Exec(query string, args ...any) (sql.Result, error) {
	return c.db.Exec(query, args...)
}
