package ledger

import (
	"log"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Store is the persistence boundary of a Ledger. Implementations live in
// internal/jsonfile and internal/sqlite.
type Store interface {
	// Load returns the persisted state. A missing or empty backing store
	// yields an empty state and a nil error. Content that cannot be decoded
	// yields an error wrapping types.ErrCorruptData.
	Load() (*types.State, error)

	// Save replaces the persisted state with s in full.
	Save(s *types.State) error
}

// loggingStore is a Store that reports skipped records while loading.
type loggingStore interface {
	Store
	SetLogger(*log.Logger)
}
