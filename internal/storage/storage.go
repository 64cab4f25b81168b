package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrMalformed marks task data that could be read but not understood.
var ErrMalformed = errors.New("malformed task data")

type Task struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Store loads and saves the whole task list. Implementations are bound to a
// single path at Open time.
type Store interface {
	Load() ([]Task, error)
	Save(tasks []Task) error
	Path() string
	Close() error
}

// Open picks a backend from the file extension: SQLite for .db/.sqlite/.sqlite3,
// JSON for everything else.
func Open(path string) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("task file path is empty")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	default:
		return NewJSONStore(path), nil
	}
}

// Backend names the storage kind behind s, for logs.
func Backend(s Store) string {
	switch s.(type) {
	case *SQLiteStore:
		return "sqlite"
	case *JSONStore:
		return "json"
	default:
		return "unknown"
	}
}

// Validate checks the invariants every loaded list must hold.
func Validate(tasks []Task) error {
	seen := make(map[int]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID < 0 {
			return fmt.Errorf("%w: task %d has negative id %d", ErrMalformed, i, t.ID)
		}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: task %d (id %d) has an empty title", ErrMalformed, i, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrMalformed, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// NextID returns one past the largest id in tasks, or 0 for an empty list.
func NextID(tasks []Task) int {
	next := 0
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}
