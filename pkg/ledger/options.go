package ledger

import (
	"io"
	"log"
	"time"

	"github.com/google/uuid"
)

// Option configures a Ledger at construction.
type Option func(*Ledger)

// WithStrictLoad makes Load return corruption errors instead of falling
// back to an empty state.
func WithStrictLoad(strict bool) Option {
	return func(l *Ledger) { l.strictLoad = strict }
}

// WithStrictRecipients makes AddRecipient reject duplicate names with
// types.ErrDuplicateRecipient.
func WithStrictRecipients(strict bool) Option {
	return func(l *Ledger) { l.strictRecipients = strict }
}

// WithLogger routes ledger logging to logger. A nil logger discards output.
func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		l.log = logger
	}
}

// WithClock replaces time.Now for distribution timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator replaces the UUID v7 generator for history IDs.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// generateUUID returns a UUID v7, falling back to v4 if v7 generation fails.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
