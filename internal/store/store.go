// Package store persists serialized reports in SQLite so they survive restarts.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ReportKey holds the most recent report payload.
const ReportKey = "postureReport"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key         TEXT PRIMARY KEY,
	value       TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS analysis_history (
	id          TEXT PRIMARY KEY,
	value       TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`

// timeLayout is fixed width so that text order of created_at matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a key has never been set.
var ErrNotFound = errors.New("key not found")

// Entry is one archived report.
type Entry struct {
	ID        string
	Value     string
	CreatedAt time.Time
}

// Store is a key-value store of serialized strings backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Open opens (or creates) a SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()

		return nil, fmt.Errorf("pragma: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, error) {
	var value string

	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%q: %w", key, ErrNotFound)
	}

	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}

	return value, nil
}

// Set stores value under key, replacing any previous value. SaveReport uses the same upsert for the
// current report; Set is the generic half of the key-value interface.
func (s *Store) Set(key, value string) error {
	return upsert(s.db, key, value, s.timestamp())
}

func upsert(exec execer, key, value, stamp string) error {
	_, err := exec.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, stamp,
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

// SaveReport sets the current report and archives a copy in the history, in one transaction.
// It returns the history entry id.
func (s *Store) SaveReport(value string) (string, error) {
	id := uuid.New().String()
	now := s.timestamp()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := upsert(tx, ReportKey, value, now); err != nil {
		return "", err
	}

	_, err = tx.Exec(`INSERT INTO analysis_history (id, value, created_at) VALUES (?, ?, ?)`, id, value, now)
	if err != nil {
		return "", fmt.Errorf("archive report: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	return id, nil
}

// History returns archived reports, newest first.
func (s *Store) History(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, value, created_at FROM analysis_history ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var (
			entry   Entry
			created string
		)

		if err := rows.Scan(&entry.ID, &entry.Value, &created); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}

		entry.CreatedAt, err = parseTime(created)
		if err != nil {
			return nil, fmt.Errorf("history entry %q: %w", entry.ID, err)
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Entry returns one archived report by id.
func (s *Store) Entry(id string) (Entry, error) {
	var (
		entry   Entry
		created string
	)

	err := s.db.QueryRow(`SELECT id, value, created_at FROM analysis_history WHERE id = ?`, id).
		Scan(&entry.ID, &entry.Value, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}

	if err != nil {
		return Entry{}, fmt.Errorf("get entry %q: %w", id, err)
	}

	entry.CreatedAt, err = parseTime(created)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %q: %w", id, err)
	}

	return entry, nil
}

func parseTime(value string) (time.Time, error) {
	stamp, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("created_at %q: %w", value, err)
	}

	return stamp, nil
}
