package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface for local SQLite storage
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLiteStore instance
func NewSQLiteStore(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
	}
}

// Path returns the database file path the store was created with
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Connect opens a connection to the SQLite database, creating the
// containing directory if needed.
func (s *SQLiteStore) Connect() error {
	if !isMemoryPath(s.dbPath) {
		if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o700); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection for the store's lifetime
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return errors.Join(fmt.Errorf("failed to connect to database: %w", err), closeErr)
	}

	s.db = db
	return nil
}

// Migrate applies any migrations that have not been recorded yet
func (s *SQLiteStore) Migrate() error {
	if s.db == nil {
		return errNotConnected
	}
	return runMigrations(s.db)
}

// InsertPerson appends a new record and returns the id SQLite assigned to it
func (s *SQLiteStore) InsertPerson(name string, age int) (int64, error) {
	if s.db == nil {
		return 0, errNotConnected
	}

	result, err := s.db.Exec("INSERT INTO persons (name, age) VALUES (?, ?)", name, age)
	if err != nil {
		return 0, fmt.Errorf("failed to insert person: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// AllPersons returns every row of the persons table. No ORDER BY is applied,
// so rows come back in SQLite's native iteration order.
func (s *SQLiteStore) AllPersons() ([]Person, error) {
	if s.db == nil {
		return nil, errNotConnected
	}

	rows, err := s.db.Query("SELECT id, name, age FROM persons")
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	persons := []Person{}
	for rows.Next() {
		var (
			p    Person
			name sql.NullString
			age  sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &name, &age); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		p.Name = name.String
		p.Age = int(age.Int64)
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate persons: %w", err)
	}

	return persons, nil
}

// DeletePerson removes the record with the given id. A missing id is not an
// error; the returned count is zero in that case.
func (s *SQLiteStore) DeletePerson(id int64) (int64, error) {
	if s.db == nil {
		return 0, errNotConnected
	}

	result, err := s.db.Exec("DELETE FROM persons WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete person: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}

// BatchInsertPersons inserts multiple records in a single transaction.
// Either all rows are stored or none are.
func (s *SQLiteStore) BatchInsertPersons(persons []Person) ([]int64, error) {
	if s.db == nil {
		return nil, errNotConnected
	}
	if len(persons) == 0 {
		return nil, nil
	}

	// Start a transaction for batch insert
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback if we don't commit - ignore errors as they're expected if transaction was committed
		_ = tx.Rollback()
	}()

	stmt, err := tx.Prepare("INSERT INTO persons (name, age) VALUES (?, ?)")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	ids := make([]int64, 0, len(persons))
	for _, p := range persons {
		result, err := stmt.Exec(p.Name, p.Age)
		if err != nil {
			return nil, fmt.Errorf("failed to insert person: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read inserted id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ids, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

var errNotConnected = errors.New("database not connected")

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}
