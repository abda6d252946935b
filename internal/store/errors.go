package store

import "errors"

var (
	ErrNotFound       = errors.New("student not found")
	ErrUnknownBackend = errors.New("unknown store backend")
	ErrClosed         = errors.New("store is closed")
)
