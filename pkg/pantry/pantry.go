// Package pantry opens a ledger over the backend named in a types.Config.
// It is the entry point for programs that want a ready-to-use pantry
// without choosing a Store themselves.
//
// Example:
//
//	p, err := pantry.Open(types.Config{
//	    Backend: types.BackendJSON,
//	    DataDir: ".pantry-db",
//	})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//	out := p.RecordDistribution("Rice", "Alice Johnson", 5)
package pantry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/pantry/internal/jsonfile"
	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/ledger"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Version is the release string reported by the CLI.
const Version = "0.3.0"

// Pantry is a loaded Ledger bound to its Store.
type Pantry struct {
	*ledger.Ledger

	cfg   types.Config
	path  string
	store ledger.Store
}

// Open validates cfg, creates the data directory, builds the configured
// store, and loads it into a new Ledger. An empty DataDir means the current
// directory. Extra ledger options (a logger, a clock) are applied after the
// ones derived from cfg.
func Open(cfg types.Config, opts ...ledger.Option) (*Pantry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	dir := cfg.DataDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	p := &Pantry{cfg: cfg}
	switch cfg.Backend {
	case types.BackendSQLite:
		p.path = filepath.Join(dir, sqlite.DefaultFileName)
		p.store = sqlite.NewBackend(p.path)
	default:
		p.path = filepath.Join(dir, jsonfile.DefaultFileName)
		p.store = jsonfile.New(p.path)
	}

	all := append([]ledger.Option{
		ledger.WithStrictLoad(cfg.StrictLoad),
		ledger.WithStrictRecipients(cfg.StrictRecipients),
	}, opts...)
	p.Ledger = ledger.New(p.store, all...)

	if err := p.Load(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// Path returns the file backing the pantry.
func (p *Pantry) Path() string { return p.path }

// Threshold returns the configured low-stock threshold.
func (p *Pantry) Threshold() int { return p.cfg.Threshold() }

// Close releases the store. The ledger stays readable but further saves
// fail for the sqlite backend.
func (p *Pantry) Close() error {
	if c, ok := p.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
