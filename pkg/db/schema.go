// Package db provides SQLite storage for the journal blob and ledger export history.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Key-value table
-- Holds the journal list as one JSON blob when the sqlite driver is selected
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Export history table
-- Tracks which sales have been written to a Beancount ledger file
CREATE TABLE IF NOT EXISTS export_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    transaction_id INTEGER NOT NULL UNIQUE, -- Sale id from the journal
    sale_date TEXT NOT NULL,                -- YYYY-MM-DD
    total REAL NOT NULL,
    ledger_file TEXT NOT NULL,              -- Path to Beancount file
    exported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_export_history_date
    ON export_history(sale_date);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
