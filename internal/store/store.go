// Package store holds the grade records for a single gradebook session.
//
// Records live only as long as the process: both backends are in-memory
// (the SQLite backend opens a private :memory: database). Iteration order is
// the order in which a name was first written; overwriting a name keeps its
// position.
package store

import (
	"context"
	"iter"
)

// Record is one student's grade. Grade is opaque text.
type Record struct {
	Name  string
	Grade string
}

// Store maps student names to grades.
type Store interface {
	// Put inserts or overwrites the grade for name.
	Put(ctx context.Context, name, grade string) error
	// Update overwrites the grade for an existing name.
	// It returns ErrNotFound, and changes nothing, if name is absent.
	Update(ctx context.Context, name, grade string) error
	Get(ctx context.Context, name string) (string, error)
	Has(ctx context.Context, name string) (bool, error)
	Len(ctx context.Context) (int, error)
	// All lazily yields every record in insertion order. Iteration stops
	// after the first non-nil error.
	All(ctx context.Context) iter.Seq2[Record, error]
	Close() error
}
