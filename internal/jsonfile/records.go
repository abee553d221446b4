// JSON record structures for the pantry state document.
package jsonfile

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// document is the top-level object of the state file as written. Items,
// receipts, and history entries use the JSON form of their types.
type document struct {
	Inventory  []types.Item         `json:"inventory"`
	Recipients []recipientJSON      `json:"recipients"`
	History    []types.Distribution `json:"history"`
}

// recipientJSON represents a recipient as written.
type recipientJSON struct {
	Name          string          `json:"name"`
	HouseholdSize int             `json:"household_size"`
	Notes         string          `json:"notes"`
	ReceivedItems []types.Receipt `json:"received_items"`
}

// rawDocument is the top-level object as read. Collections stay raw so each
// record is decoded on its own and one mistyped record does not hide the
// rest of the document.
type rawDocument struct {
	Inventory  json.RawMessage `json:"inventory"`
	Recipients json.RawMessage `json:"recipients"`
	History    json.RawMessage `json:"history"`
}

// rawRecipient is a recipient as read. HouseholdSize is a pointer so that
// an absent field can default to 1.
type rawRecipient struct {
	Name          string          `json:"name"`
	HouseholdSize *int            `json:"household_size"`
	Notes         string          `json:"notes"`
	ReceivedItems json.RawMessage `json:"received_items"`
}

func encodeState(s *types.State) document {
	doc := document{
		Inventory:  make([]types.Item, 0, len(s.Inventory)),
		Recipients: make([]recipientJSON, 0, len(s.Recipients)),
		History:    make([]types.Distribution, 0, len(s.History)),
	}
	doc.Inventory = append(doc.Inventory, s.Inventory...)
	for _, r := range s.Recipients {
		rec := recipientJSON{
			Name:          r.Name,
			HouseholdSize: r.HouseholdSize,
			Notes:         r.Notes,
			ReceivedItems: make([]types.Receipt, 0, len(r.ReceivedItems)),
		}
		rec.ReceivedItems = append(rec.ReceivedItems, r.ReceivedItems...)
		doc.Recipients = append(doc.Recipients, rec)
	}
	doc.History = append(doc.History, s.History...)
	return doc
}

// decodeState decodes each record of doc on its own. Records and
// collections of the wrong shape are skipped and reported through logf.
func decodeState(doc rawDocument, logf func(string, ...any)) *types.State {
	s := &types.State{
		Inventory:  []types.Item{},
		Recipients: []types.Recipient{},
		History:    []types.Distribution{},
	}

	for i, raw := range records("inventory", doc.Inventory, logf) {
		var it types.Item
		if err := json.Unmarshal(raw, &it); err != nil {
			logf("skipping inventory record %d: %v", i, err)
			continue
		}
		s.Inventory = append(s.Inventory, it)
	}

	for i, raw := range records("recipients", doc.Recipients, logf) {
		var rec rawRecipient
		if err := json.Unmarshal(raw, &rec); err != nil {
			logf("skipping recipient record %d: %v", i, err)
			continue
		}
		r := types.Recipient{
			Name:          rec.Name,
			HouseholdSize: 1,
			Notes:         rec.Notes,
			ReceivedItems: []types.Receipt{},
		}
		if rec.HouseholdSize != nil {
			r.HouseholdSize = *rec.HouseholdSize
		}
		what := fmt.Sprintf("received_items of %q", rec.Name)
		for j, rawReceipt := range records(what, rec.ReceivedItems, logf) {
			var rc types.Receipt
			if err := json.Unmarshal(rawReceipt, &rc); err != nil {
				logf("skipping %s record %d: %v", what, j, err)
				continue
			}
			r.ReceivedItems = append(r.ReceivedItems, rc)
		}
		s.Recipients = append(s.Recipients, r)
	}

	for i, raw := range records("history", doc.History, logf) {
		var d types.Distribution
		if err := json.Unmarshal(raw, &d); err != nil {
			logf("skipping history record %d: %v", i, err)
			continue
		}
		s.History = append(s.History, d)
	}
	return s
}

// records splits a raw collection into its records. An absent or null
// collection is empty; one that is not an array is ignored.
func records(what string, raw json.RawMessage, logf func(string, ...any)) []json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		logf("ignoring %s: not an array", what)
		return nil
	}
	return out
}
