package eventlog

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteSink appends event rows to an append-only SQLite table with the
// same column schema as the CSV log. Useful when downstream tooling prefers
// SQL over flat files; selected via --event-sink sqlite.
type SQLiteSink struct {
	db     *sql.DB
	insert string
}

// NewSQLiteSink opens (or creates) the database at path and initializes the
// events table.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteSink{db: db, insert: buildInsert()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteSink) migrate() error {
	cols := make([]string, 0, len(Header))
	for _, h := range Header {
		cols = append(cols, h+" TEXT NOT NULL")
	}
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		%s
	);
	CREATE INDEX IF NOT EXISTS idx_events_case ON events(case_id, date);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type, date);
	`, strings.Join(cols, ",\n\t\t"))
	_, err := s.db.Exec(schema)
	return err
}

func buildInsert() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(Header)), ", ")
	return fmt.Sprintf("INSERT INTO events (%s) VALUES (%s)",
		strings.Join(Header, ", "), placeholders)
}

// WriteRows appends all rows inside one transaction, so a failed batch
// leaves the table untouched and the caller's buffer intact.
func (s *SQLiteSink) WriteRows(rows [][]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(s.insert)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, row := range rows {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
