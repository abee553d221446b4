package types

import (
	"encoding/json"
	"time"
)

// Distribution is one entry of the global, append-only history.
// ID is a UUID v7; records written before IDs existed have an empty ID.
// RawTimestamp holds the stored text when it could not be parsed.
type Distribution struct {
	ID           string    `json:"id,omitempty"`
	Recipient    string    `json:"recipient"`
	Item         string    `json:"item"`
	Quantity     int       `json:"quantity"`
	Timestamp    time.Time `json:"timestamp"`
	RawTimestamp string    `json:"-"`
}

type distributionRecord struct {
	ID        string `json:"id,omitempty"`
	Recipient string `json:"recipient"`
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	Timestamp string `json:"timestamp"`
}

// MarshalJSON writes the timestamp in TimeLayout, as the state file does.
func (d Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(distributionRecord{
		ID:        d.ID,
		Recipient: d.Recipient,
		Item:      d.Item,
		Quantity:  d.Quantity,
		Timestamp: EncodeTimestamp(d.Timestamp, d.RawTimestamp),
	})
}

// UnmarshalJSON reads a distribution written by MarshalJSON.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	var rec distributionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	ts, raw := DecodeTimestamp(rec.Timestamp)
	*d = Distribution{
		ID:           rec.ID,
		Recipient:    rec.Recipient,
		Item:         rec.Item,
		Quantity:     rec.Quantity,
		Timestamp:    ts,
		RawTimestamp: raw,
	}
	return nil
}
