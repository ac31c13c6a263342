// Package recordstore is a local list host backed by SQLite. It implements
// listitem.Service so the list helpers can run without a remote server,
// which makes it the backing store for demos and tests.
//
// Filter evaluation is not implemented: reads with a non-empty filter fail
// with ErrFilterUnsupported instead of silently returning every item.
package recordstore

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/spquery/internal/listitem"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema
const currentSchemaVersion = 1

var (
	// ErrListNotFound is returned for unknown list ids or titles.
	ErrListNotFound = errors.New("list not found")

	// ErrItemNotFound is returned when updating a missing item.
	ErrItemNotFound = errors.New("item not found")

	// ErrFieldNotFound is returned for unknown choice fields.
	ErrFieldNotFound = errors.New("field not found")

	// ErrFilterUnsupported is returned by Items for a non-empty filter.
	ErrFilterUnsupported = errors.New("filter evaluation is not supported by the local store")
)

// GUIDGenerator assigns list ids.
type GUIDGenerator interface {
	NewGUID() uuid.UUID
}

type randomGUIDs struct{}

func (randomGUIDs) NewGUID() uuid.UUID { return uuid.New() }

// Option configures a Store.
type Option func(*Store)

// WithGUIDs replaces the random list id generator.
func WithGUIDs(g GUIDGenerator) Option {
	return func(s *Store) { s.guids = g }
}

// Store is a SQLite-backed list host.
type Store struct {
	db    *sql.DB
	guids GUIDGenerator
}

var _ listitem.Service = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &Store{db: db, guids: randomGUIDs{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
