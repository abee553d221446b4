package types

import (
	"encoding/json"
	"time"
)

// Receipt is a recipient-scoped record of one distribution.
// RawTimestamp holds the stored text when it could not be parsed, in which
// case Timestamp is zero.
type Receipt struct {
	ItemName     string    `json:"item_name"`
	Quantity     int       `json:"quantity"`
	Timestamp    time.Time `json:"timestamp"`
	RawTimestamp string    `json:"-"`
}

type receiptRecord struct {
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	Timestamp string `json:"timestamp"`
}

// MarshalJSON writes the timestamp in TimeLayout, as the state file does.
func (r Receipt) MarshalJSON() ([]byte, error) {
	return json.Marshal(receiptRecord{
		ItemName:  r.ItemName,
		Quantity:  r.Quantity,
		Timestamp: EncodeTimestamp(r.Timestamp, r.RawTimestamp),
	})
}

// UnmarshalJSON reads a receipt written by MarshalJSON.
func (r *Receipt) UnmarshalJSON(data []byte) error {
	var rec receiptRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	ts, raw := DecodeTimestamp(rec.Timestamp)
	*r = Receipt{ItemName: rec.ItemName, Quantity: rec.Quantity, Timestamp: ts, RawTimestamp: raw}
	return nil
}

// Recipient is a registered party that receives food. HouseholdSize is
// always positive. ReceivedItems is ordered by insertion.
type Recipient struct {
	Name          string    `json:"name"`
	HouseholdSize int       `json:"household_size"`
	Notes         string    `json:"notes"`
	ReceivedItems []Receipt `json:"received_items"`
}

// RecordReceipt appends a receipt to the recipient's log. It does not
// check the item or the quantity; the ledger does that before calling.
func (r *Recipient) RecordReceipt(itemName string, quantity int, ts time.Time) {
	r.ReceivedItems = append(r.ReceivedItems, Receipt{
		ItemName:  itemName,
		Quantity:  quantity,
		Timestamp: ts,
	})
}

// Clone returns a copy whose receipt log does not share storage with r.
func (r Recipient) Clone() Recipient {
	c := r
	c.ReceivedItems = make([]Receipt, len(r.ReceivedItems))
	copy(c.ReceivedItems, r.ReceivedItems)
	return c
}
