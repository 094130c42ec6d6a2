package backend

import (
	"bottega/internal/store"
)

// Store is the unified backend surface the report service consumes.
type Store interface {
	store.SnapshotReader
	store.OrderReader
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result carries the constructed store and its optional cleanup.
type Result struct {
	Store   Store
	Cleanup CleanupFunc
}

// Config holds what backend construction needs.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

// Type selects a backend implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
