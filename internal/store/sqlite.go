package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"sync/atomic"

	"gradebook/internal/logging"

	_ "modernc.org/sqlite"
)

const studentsSchema = `
CREATE TABLE IF NOT EXISTS students (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL UNIQUE,
	grade TEXT NOT NULL
)`

// SQLiteStore keeps records in a private in-memory SQLite database.
// Row ids preserve first-insertion order; an upsert keeps the original row.
//
// The database is pinned to a single connection, so a caller ranging over
// All must not write to the store until the loop ends.
type SQLiteStore struct {
	db     *sql.DB
	closed atomic.Bool
}

// NewSQLiteStore opens a fresh :memory: database and creates the schema.
func NewSQLiteStore() (*SQLiteStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewSQLiteStore")
	defer timer.Stop()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every new connection to :memory: is a different database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(studentsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	logging.StoreDebug("sqlite store ready")

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, name, grade string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO students (name, grade) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET grade = excluded.grade`,
		name, grade)
	if err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}
	logging.StoreDebug("sqlite put name=%q", name)
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, name, grade string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `UPDATE students SET grade = ? WHERE name = ?`, grade, name)
	if err != nil {
		return fmt.Errorf("update %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	logging.StoreDebug("sqlite update name=%q", name)
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (string, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}

	var grade string
	err := s.db.QueryRowContext(ctx, `SELECT grade FROM students WHERE name = ?`, name).Scan(&grade)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", name, err)
	}
	return grade, nil
}

func (s *SQLiteStore) Has(ctx context.Context, name string) (bool, error) {
	_, err := s.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// All streams rows ordered by row id.
func (s *SQLiteStore) All(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		if s.closed.Load() {
			yield(Record{}, ErrClosed)
			return
		}

		rows, err := s.db.QueryContext(ctx, `SELECT name, grade FROM students ORDER BY id`)
		if err != nil {
			yield(Record{}, fmt.Errorf("list: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var rec Record
			if err := rows.Scan(&rec.Name, &rec.Grade); err != nil {
				yield(Record{}, fmt.Errorf("scan: %w", err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Record{}, fmt.Errorf("list: %w", err))
		}
	}
}

// Close drops the in-memory database and every record in it.
func (s *SQLiteStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}
