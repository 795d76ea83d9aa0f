package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ExportRecord represents an export history record.
type ExportRecord struct {
	ID            int64
	TransactionID int64
	SaleDate      string
	Total         float64
	LedgerFile    string
	ExportedAt    time.Time
}

// ExportHistory manages export history operations.
type ExportHistory struct {
	conn *Connection
}

// NewExportHistory creates a new ExportHistory instance.
func NewExportHistory(conn *Connection) *ExportHistory {
	return &ExportHistory{conn: conn}
}

// RecordExport records that a sale was written to a ledger file.
// If the sale was already recorded, the row is updated.
func (h *ExportHistory) RecordExport(record ExportRecord) error {
	query := `
		INSERT INTO export_history (transaction_id, sale_date, total, ledger_file)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(transaction_id) DO UPDATE SET
			sale_date = excluded.sale_date,
			total = excluded.total,
			ledger_file = excluded.ledger_file,
			exported_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.Exec(query,
		record.TransactionID,
		record.SaleDate,
		record.Total,
		record.LedgerFile,
	)
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}

	return nil
}

// IsExported checks if a sale has been exported.
func (h *ExportHistory) IsExported(transactionID int64) (bool, error) {
	var count int
	err := h.conn.QueryRow(`SELECT COUNT(*) FROM export_history WHERE transaction_id = ?`, transactionID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if exported: %w", err)
	}

	return count > 0, nil
}

// GetExportedIDs retrieves all exported sale ids.
// This is useful for bulk filtering.
func (h *ExportHistory) GetExportedIDs() ([]int64, error) {
	rows, err := h.conn.Query(`SELECT transaction_id FROM export_history`)
	if err != nil {
		return nil, fmt.Errorf("failed to get exported IDs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan transaction ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetExportRecord retrieves the export record for a sale.
// Returns nil if the sale was never exported.
func (h *ExportHistory) GetExportRecord(transactionID int64) (*ExportRecord, error) {
	query := `
		SELECT id, transaction_id, sale_date, total, ledger_file, exported_at
		FROM export_history
		WHERE transaction_id = ?
	`

	var record ExportRecord
	err := h.conn.QueryRow(query, transactionID).Scan(
		&record.ID,
		&record.TransactionID,
		&record.SaleDate,
		&record.Total,
		&record.LedgerFile,
		&record.ExportedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export record: %w", err)
	}

	return &record, nil
}

// DeleteExportRecord deletes an export record.
// Use case: force re-export of a sale after editing the ledger by hand.
func (h *ExportHistory) DeleteExportRecord(transactionID int64) (bool, error) {
	result, err := h.conn.Exec(`DELETE FROM export_history WHERE transaction_id = ?`, transactionID)
	if err != nil {
		return false, fmt.Errorf("failed to delete export record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// Stats represents export statistics.
type Stats struct {
	TotalExported int
	TotalRevenue  float64
	LastExport    sql.NullString
}

// GetStats retrieves export statistics.
func (h *ExportHistory) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`SELECT COUNT(*), COALESCE(SUM(total), 0.0) FROM export_history`).
		Scan(&stats.TotalExported, &stats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to get export count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MAX(exported_at) FROM export_history`).Scan(&stats.LastExport)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get last export time: %w", err)
	}

	return &stats, nil
}
