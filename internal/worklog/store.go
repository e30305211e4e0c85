// Package worklog persists crew work-log entries keyed by calendar date.
package worklog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS work_log (
	date        TEXT PRIMARY KEY,
	crew        TEXT NOT NULL,
	assembly_id TEXT NOT NULL,
	hours       REAL NOT NULL,
	notes       TEXT NOT NULL DEFAULT '',
	updated_at  TEXT NOT NULL
);`

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Entry is one day's work record for a crew on an assembly.
type Entry struct {
	Date       string    `json:"date"`
	Crew       string    `json:"crew"`
	AssemblyID string    `json:"assembly_id"`
	Hours      float64   `json:"hours"`
	Notes      string    `json:"notes,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// row is the storage shape: timestamps travel as RFC3339 text because
// SQLite has no native time type.
type row struct {
	Date       string  `db:"date"`
	Crew       string  `db:"crew"`
	AssemblyID string  `db:"assembly_id"`
	Hours      float64 `db:"hours"`
	Notes      string  `db:"notes"`
	UpdatedAt  string  `db:"updated_at"`
}

func (r row) toEntry() Entry {
	updated, _ := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	return Entry{
		Date:       r.Date,
		Crew:       r.Crew,
		AssemblyID: r.AssemblyID,
		Hours:      r.Hours,
		Notes:      r.Notes,
		UpdatedAt:  updated,
	}
}

// Store is a SQLite-backed work log. One entry per date; writes upsert.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the work-log database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open work log: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init work log schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Put inserts or replaces the entry for its date.
func (s *Store) Put(ctx context.Context, e Entry) error {
	if !dateFormat.MatchString(e.Date) {
		return fmt.Errorf("invalid work log date %q, want YYYY-MM-DD", e.Date)
	}
	r := row{
		Date:       e.Date,
		Crew:       e.Crew,
		AssemblyID: e.AssemblyID,
		Hours:      e.Hours,
		Notes:      e.Notes,
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO work_log (date, crew, assembly_id, hours, notes, updated_at)
		VALUES (:date, :crew, :assembly_id, :hours, :notes, :updated_at)
		ON CONFLICT(date) DO UPDATE SET
			crew = excluded.crew,
			assembly_id = excluded.assembly_id,
			hours = excluded.hours,
			notes = excluded.notes,
			updated_at = excluded.updated_at`, r)
	if err != nil {
		return fmt.Errorf("put work log entry: %w", err)
	}
	return nil
}

// Get returns the entry for the given date, with found=false when absent.
func (s *Store) Get(ctx context.Context, date string) (Entry, bool, error) {
	var r row
	err := s.db.GetContext(ctx, &r, `SELECT date, crew, assembly_id, hours, notes, updated_at FROM work_log WHERE date = ?`, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("get work log entry: %w", err)
	}
	return r.toEntry(), true, nil
}

// Range returns entries between from and to inclusive, oldest first.
func (s *Store) Range(ctx context.Context, from, to string) ([]Entry, error) {
	var rows []row
	err := s.db.SelectContext(ctx, &rows, `
		SELECT date, crew, assembly_id, hours, notes, updated_at
		FROM work_log
		WHERE date >= ? AND date <= ?
		ORDER BY date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("range work log entries: %w", err)
	}
	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = r.toEntry()
	}
	return entries, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
