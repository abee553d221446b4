// Package sqlite implements a pantry store on a single SQLite database file.
// It holds the same state as the JSON document, one table per collection,
// and rewrites every table on each save so the file always mirrors the
// ledger in full.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/pantry/pkg/ledger"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// DefaultFileName is the database file name inside a data directory.
const DefaultFileName = "pantry.db"

// ErrDetached is returned by Load and Save after Detach.
var ErrDetached = errors.New("sqlite backend is detached")

var _ ledger.Store = (*Backend)(nil)

// Backend implements ledger.Store on a SQLite database. The connection is
// opened and the schema created on first use.
type Backend struct {
	mu       sync.Mutex
	path     string
	db       *sql.DB
	detached bool
}

// NewBackend returns a backend for the database at path. The file is not
// touched until the first Load or Save.
func NewBackend(path string) *Backend {
	return &Backend{path: path}
}

// Detach closes the database connection. Detach is idempotent; afterwards
// Load and Save return ErrDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.detached {
		return nil
	}
	b.detached = true
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// Close is Detach under the io.Closer name.
func (b *Backend) Close() error {
	return b.Detach()
}

// openLocked opens the connection and creates missing tables. The caller
// must hold b.mu.
func (b *Backend) openLocked() (*sql.DB, error) {
	if b.detached {
		return nil, ErrDetached
	}
	if b.db != nil {
		return b.db, nil
	}

	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", b.path, err)
	}
	// One connection keeps every statement on the same SQLite handle.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, classify(fmt.Errorf("creating schema in %s: %w", b.path, err))
		}
	}
	b.db = db
	return db, nil
}

// classify wraps errors raised by SQLite for a file that is not a database,
// or a damaged one, with types.ErrCorruptData.
func classify(err error) error {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return fmt.Errorf("%w: %v", types.ErrCorruptData, err)
	}
	return err
}
