package types

import (
	"fmt"
	"time"
)

// TimeLayout is the on-disk timestamp format: ISO-8601, second precision,
// local time without a zone suffix.
const TimeLayout = "2006-01-02T15:04:05"

// State is the full persisted content of a pantry. Slices keep the ledger's
// order: inventory by first insertion, recipients by registration, history
// chronologically.
type State struct {
	Inventory  []Item
	Recipients []Recipient
	History    []Distribution
}

// Empty reports whether the state holds no data at all.
func (s *State) Empty() bool {
	return len(s.Inventory) == 0 && len(s.Recipients) == 0 && len(s.History) == 0
}

// FormatTime renders t with TimeLayout in local time.
func FormatTime(t time.Time) string {
	return t.Local().Format(TimeLayout)
}

// localLayouts are the zone-less ISO-8601 forms ParseTime accepts, tried
// in order. Fractional seconds are accepted after any seconds field.
var localLayouts = []string{
	TimeLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses a stored timestamp. The zone-less ISO-8601 forms are
// read in local time; RFC 3339 is accepted for documents written by other
// tools.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.Local(), nil
}

// EncodeTimestamp renders t for storage. A zero t is written as raw, the
// text it was loaded from when that text could not be parsed, which is
// empty for records that never had a timestamp.
func EncodeTimestamp(t time.Time, raw string) string {
	if t.IsZero() {
		return raw
	}
	return FormatTime(t)
}

// DecodeTimestamp parses a stored timestamp. Text that does not parse
// yields the zero time and is returned as raw so that saving the record
// again writes it back unchanged.
func DecodeTimestamp(s string) (t time.Time, raw string) {
	if s == "" {
		return time.Time{}, ""
	}
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, s
	}
	return t, ""
}
