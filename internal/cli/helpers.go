package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/ledger"
	"github.com/mesh-intelligence/pantry/pkg/pantry"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// userErrors are the domain failures reported with exitUserError.
var userErrors = []error{
	types.ErrInvalidQuantity,
	types.ErrNegativeQuantity,
	types.ErrQuantityOverflow,
	types.ErrInvalidHouseholdSize,
	types.ErrInvalidName,
	types.ErrItemNotFound,
	types.ErrRecipientNotFound,
	types.ErrDuplicateRecipient,
	types.ErrInsufficientStock,
}

// openPantry resolves the data directory and opens the configured pantry.
// The caller must defer Close.
func (a *app) openPantry() (*pantry.Pantry, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	p, err := pantry.Open(configFor(a.v, dataDir), ledger.WithLogger(a.logger))
	if err != nil {
		return nil, sysError(fmt.Errorf("open pantry: %w", err))
	}
	return p, nil
}

// classify maps domain failures to exitUserError and everything else to
// exitSysError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// save persists p after a mutating command.
func save(p *pantry.Pantry) error {
	if err := p.Save(); err != nil {
		return sysError(err)
	}
	return nil
}

// parseInt parses a command-line integer argument.
func parseInt(what, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, userError(fmt.Errorf("%s must be an integer, got %q", what, arg))
	}
	return n, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// outcomeError reports a distribution failure with its display message.
type outcomeError struct {
	msg string
	err error
}

func (e *outcomeError) Error() string { return e.msg }
func (e *outcomeError) Unwrap() error { return e.err }
