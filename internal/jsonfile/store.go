// Package jsonfile implements the flat-file pantry store: the full state is
// one indented JSON document, rewritten in full on every save.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/mesh-intelligence/pantry/pkg/ledger"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// DefaultFileName is the state file name inside a data directory.
const DefaultFileName = "pantry_data.json"

var _ ledger.Store = (*Store)(nil)

// Store reads and writes the state document at Path.
type Store struct {
	Path string

	log *log.Logger
}

// New returns a Store for the document at path.
func New(path string) *Store {
	return &Store{Path: path, log: log.New(io.Discard, "", 0)}
}

// SetLogger routes reports of skipped records to logger. A nil logger
// discards them.
func (s *Store) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s.log = logger
}

// Load reads the state document. A missing file or one holding only
// whitespace yields an empty state. Content that is not JSON, or whose top
// level is not an object, yields an error wrapping types.ErrCorruptData.
// Inside a well-formed document, records of the wrong shape are skipped
// and logged; the rest load.
func (s *Store) Load() (*types.State, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return &types.State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &types.State{}, nil
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", s.Path, types.ErrCorruptData, err)
	}
	return decodeState(doc, s.logf), nil
}

func (s *Store) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.Printf("%s: "+format, append([]any{s.Path}, args...)...)
}

// Save overwrites the state document with st.
func (s *Store) Save(st *types.State) error {
	data, err := Marshal(st)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.Path, data); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	return nil
}

// Marshal encodes st as the indented state document written by Save.
func Marshal(st *types.State) ([]byte, error) {
	data, err := json.MarshalIndent(encodeState(st), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return append(data, '\n'), nil
}
