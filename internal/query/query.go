// Package query evaluates JSONPath expressions against the pantry state
// document, in the exact shape the JSON store writes it.
package query

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"github.com/mesh-intelligence/pantry/internal/jsonfile"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Eval returns the value selected by expr, for example
// "$.inventory[?(@.quantity <= 5)].name". Numbers are float64, as
// encoding/json decodes them.
func Eval(st *types.State, expr string) (any, error) {
	data, err := jsonfile.Marshal(st)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding state document: %w", err)
	}
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", expr, err)
	}
	return v, nil
}
