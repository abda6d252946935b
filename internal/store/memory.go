package store

import (
	"context"
	"iter"
	"sync"

	"gradebook/internal/logging"
)

// MemoryStore is a map-backed Store that remembers insertion order.
// It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	grades map[string]string
	order  []string
	closed bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		grades: make(map[string]string),
	}
}

func (m *MemoryStore) Put(ctx context.Context, name, grade string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if _, ok := m.grades[name]; !ok {
		m.order = append(m.order, name)
	}
	m.grades[name] = grade
	logging.StoreDebug("memory put name=%q", name)
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, name, grade string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if _, ok := m.grades[name]; !ok {
		return ErrNotFound
	}
	m.grades[name] = grade
	logging.StoreDebug("memory update name=%q", name)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", ErrClosed
	}

	grade, ok := m.grades[name]
	if !ok {
		return "", ErrNotFound
	}
	return grade, nil
}

func (m *MemoryStore) Has(ctx context.Context, name string) (bool, error) {
	_, err := m.Get(ctx, name)
	switch err {
	case nil:
		return true, nil
	case ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

func (m *MemoryStore) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, ErrClosed
	}
	return len(m.order), nil
}

// All yields records in insertion order. The read lock is held only while
// fetching each record, so the consumer may write to the store mid-iteration;
// names added during iteration are yielded too.
func (m *MemoryStore) All(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for i := 0; ; i++ {
			if err := ctx.Err(); err != nil {
				yield(Record{}, err)
				return
			}

			m.mu.RLock()
			if m.closed {
				m.mu.RUnlock()
				yield(Record{}, ErrClosed)
				return
			}
			if i >= len(m.order) {
				m.mu.RUnlock()
				return
			}
			name := m.order[i]
			rec := Record{Name: name, Grade: m.grades[name]}
			m.mu.RUnlock()

			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Close discards every record. Later calls fail with ErrClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.grades = nil
	m.order = nil
	return nil
}
