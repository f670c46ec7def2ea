package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// currentSchemaVersion is the PRAGMA user_version a fully migrated
// database reports. Version 1 adds the checksum index.
const currentSchemaVersion = 1

var (
	// ErrNotFound reports a slot or save that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSlotExists reports a slot name already in use.
	ErrSlotExists = errors.New("slot already exists")
	// ErrInvalidBlob reports a blob the codec cannot decode.
	ErrInvalidBlob = errors.New("invalid save blob")
)

// SlotIDGenerator produces slot identifiers.
// Implemented by UUIDv7Generator (production) and testutil.FixedSlotIDGenerator (tests).
type SlotIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 slot ids. The zero value
// is ready to use.
type UUIDv7Generator struct{}

// Generate panics only if the system entropy source fails.
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Store keeps named save slots, each an append-only history of blobs.
type Store struct {
	db  *sql.DB
	ids SlotIDGenerator
}

// Option configures a Store.
type Option func(*Store)

// WithSlotIDGenerator overrides the slot id source.
func WithSlotIDGenerator(g SlotIDGenerator) Option {
	return func(s *Store) {
		s.ids = g
	}
}

// Open opens the save database at path, creating it when missing, and
// brings its schema up to date. The connection runs in WAL mode with a
// 5s busy timeout and foreign keys enforced.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	// One writer at a time; saves are tiny so a single connection is enough.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := prepare(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	s := &Store{db: db, ids: UUIDv7Generator{}}
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

var pragmas = [...]string{
	"journal_mode = WAL",
	"synchronous = NORMAL",
	"busy_timeout = 5000",
	"foreign_keys = ON",
}

// migrations[i] upgrades a database from user_version i to i+1.
var migrations = [currentSchemaVersion]func(*sql.DB) error{
	// Index checksums so hosts can find a blob across slots.
	func(db *sql.DB) error {
		_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_saves_checksum ON saves(checksum)`)
		return err
	},
}

// prepare is idempotent.
func prepare(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	for _, p := range pragmas {
		if _, err := db.Exec("PRAGMA " + p); err != nil {
			return fmt.Errorf("pragma %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	for v := version; v < currentSchemaVersion; v++ {
		if err := migrations[v](db); err != nil {
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("write user_version: %w", err)
		}
	}
	return nil
}

// verifyPragma reports whether pragma name currently reads as want.
func (s *Store) verifyPragma(name, want string) error {
	var got string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&got); err != nil {
		return fmt.Errorf("pragma %s: %w", name, err)
	}
	if got != want {
		return fmt.Errorf("pragma %s = %q, want %q", name, got, want)
	}
	return nil
}
