// Package gradebook implements the record operations behind the menu.
// Each operation takes the store it mutates and returns the message to show
// the user; only backend failures are returned as errors.
package gradebook

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"gradebook/internal/logging"
	"gradebook/internal/store"
)

// Add inserts or overwrites the grade for name. Empty values are accepted.
func Add(ctx context.Context, s store.Store, name, grade string) (string, error) {
	if err := s.Put(ctx, name, grade); err != nil {
		return "", fmt.Errorf("add student: %w", err)
	}
	logging.SessionDebug("added student %q", name)
	return MsgAdded, nil
}

// Lookup reports whether name may be updated.
func Lookup(ctx context.Context, s store.Store, name string) (bool, error) {
	ok, err := s.Has(ctx, name)
	if err != nil {
		return false, fmt.Errorf("lookup student: %w", err)
	}
	return ok, nil
}

// Update overwrites the grade of an existing student. An absent name is
// reported through the message and leaves the store unchanged.
func Update(ctx context.Context, s store.Store, name, grade string) (string, error) {
	err := s.Update(ctx, name, grade)
	switch {
	case errors.Is(err, store.ErrNotFound):
		logging.SessionDebug("update of unknown student %q", name)
		return MsgNotFound, nil
	case err != nil:
		return "", fmt.Errorf("update student: %w", err)
	}
	logging.SessionDebug("updated student %q", name)
	return MsgUpdated, nil
}

// Display lazily yields the listing: the header line, then one line per
// record in store order.
func Display(ctx context.Context, s store.Store) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if !yield(DisplayHeader, nil) {
			return
		}
		for rec, err := range s.All(ctx) {
			if err != nil {
				yield("", fmt.Errorf("display grades: %w", err))
				return
			}
			if !yield(FormatRecord(rec.Name, rec.Grade), nil) {
				return
			}
		}
	}
}
