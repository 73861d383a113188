// Package people implements the person record store: a single SQLite-backed
// table with create, list-all and delete operations.
//
// Reads and deletes never fail outwardly. Their errors are logged and the
// caller gets an empty list or nothing at all. Creates report failures.
package people

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/lepinkainen/roster/internal/datastore"
	rerrors "github.com/lepinkainen/roster/internal/errors"
)

// Person is the single stored entity.
type Person = datastore.Person

// State is the lifecycle state of a Store's connection.
type State int

const (
	// Ready means the database was opened and the schema is in place.
	Ready State = iota
	// Unavailable means initialization failed. The store stays this way until
	// a new Store is opened.
	Unavailable
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Unavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Store owns one database connection for its whole lifetime. All operations
// are serialized, so a Store may be shared between goroutines.
type Store struct {
	mu      sync.Mutex
	backend datastore.Store
	path    string
	state   State
	initErr error
}

// Open initializes a store backed by the SQLite file at path. It never fails:
// if the file cannot be opened or the schema cannot be applied, the returned
// store is Unavailable and every operation degrades (see Store).
func Open(path string) *Store {
	return OpenWith(datastore.NewSQLiteStore(path), path)
}

// OpenWith initializes a store over an existing backend. path is only used
// for diagnostics.
func OpenWith(backend datastore.Store, path string) *Store {
	s := &Store{backend: backend, path: path}

	if err := backend.Connect(); err != nil {
		s.markUnavailable(err)
		return s
	}
	if err := backend.Migrate(); err != nil {
		_ = backend.Close()
		s.markUnavailable(err)
		return s
	}

	s.state = Ready
	slog.Debug("Record store ready", "path", path)
	return s
}

func (s *Store) markUnavailable(cause error) {
	s.state = Unavailable
	s.initErr = rerrors.NewUnavailableError(s.path, cause)
	slog.Error("Failed to initialize record store", "path", s.path, "error", cause)
}

// State reports whether the store is Ready or Unavailable.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the initialization failure, or nil for a Ready store.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initErr
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Create stores a new person and returns the id assigned to it. No
// validation is applied to name or age. The write is not retried.
func (s *Store) Create(name string, age int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unavailable {
		return 0, s.initErr
	}

	id, err := s.backend.InsertPerson(name, age)
	if err != nil {
		slog.Error("Failed to create person", "path", s.path, "error", err)
		return 0, fmt.Errorf("create person: %w", err)
	}

	slog.Debug("Person created", "id", id)
	return id, nil
}

// CreateMany stores several persons in one transaction.
func (s *Store) CreateMany(persons []Person) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unavailable {
		return nil, s.initErr
	}

	ids, err := s.backend.BatchInsertPersons(persons)
	if err != nil {
		slog.Error("Failed to create persons", "path", s.path, "count", len(persons), "error", err)
		return nil, fmt.Errorf("create persons: %w", err)
	}
	return ids, nil
}

// List returns every stored person in storage order. It never returns nil and
// never fails: when the store is empty, Unavailable or the read errors, the
// result is an empty slice and the cause is logged.
func (s *Store) List() []Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unavailable {
		slog.Warn("Listing persons from unavailable store", "path", s.path)
		return []Person{}
	}

	persons, err := s.backend.AllPersons()
	if err != nil {
		slog.Error("Failed to read persons", "path", s.path, "error", err)
		return []Person{}
	}
	if persons == nil {
		return []Person{}
	}
	return persons
}

// Delete removes the person with the given id. Deleting an unknown id is a
// no-op, and any failure is logged rather than returned.
func (s *Store) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unavailable {
		slog.Warn("Deleting person from unavailable store", "path", s.path, "id", id)
		return
	}

	removed, err := s.backend.DeletePerson(id)
	if err != nil {
		slog.Error("Failed to delete person", "path", s.path, "id", id, "error", err)
		return
	}
	slog.Debug("Person deleted", "id", id, "rows", removed)
}

// Close releases the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unavailable {
		return nil
	}
	return s.backend.Close()
}
