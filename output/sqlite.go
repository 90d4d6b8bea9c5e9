package output

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"fwdash/core"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteWriter implements the Writer interface for SQLite report exports.
// The export is a per-run artifact: the table is recreated on every run, it
// does not accumulate history.
type SQLiteWriter struct {
	mu         sync.Mutex
	db         *sql.DB
	insertStmt *sql.Stmt
	tx         *sql.Tx
}

// NewSQLiteWriter creates a new SQLite export writer
func NewSQLiteWriter(outputPath string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	schemaSQL := `
	DROP TABLE IF EXISTS report;
	CREATE TABLE report (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		section TEXT NOT NULL,
		label TEXT NOT NULL,
		count INTEGER NOT NULL,
		rank INTEGER NOT NULL,
		generated_at TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create report table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	insertSQL := `
	INSERT INTO report (section, label, count, rank, generated_at)
	VALUES (?, ?, ?, ?, ?);
	`

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}

	return &SQLiteWriter{
		db:         db,
		insertStmt: stmt,
		tx:         tx,
	}, nil
}

// Write writes the report rows to the SQLite database
func (w *SQLiteWriter) Write(report *core.Report) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	generatedAt := time.Now().Format(time.RFC3339)

	sections := []struct {
		name string
		list core.RankedList
	}{
		{sectionPriorities, report.Priorities},
		{sectionSources, report.TopSources},
		{sectionDestinations, report.TopDestinations},
		{sectionAware, report.AwareThreats},
		{sectionAllSources, report.AllSources},
	}

	for _, section := range sections {
		for i, label := range section.list.Labels {
			_, err := w.insertStmt.Exec(section.name, label, section.list.Counts[i], i+1, generatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert report row: %w", err)
			}
		}
	}

	return nil
}

// Close commits pending rows and closes the SQLite writer
func (w *SQLiteWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.insertStmt != nil {
		w.insertStmt.Close()
	}

	if w.tx != nil {
		if err := w.tx.Commit(); err != nil {
			w.db.Close()
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
