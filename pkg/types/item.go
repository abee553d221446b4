package types

import "fmt"

// Item is a named, categorized stock quantity. Name is the unique,
// case-sensitive key within a ledger. Quantity is never negative.
type Item struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// UpdateQuantity adds delta (which may be negative) to the quantity.
// If the result would drop below zero it returns an error wrapping
// ErrNegativeQuantity and leaves the quantity unchanged. An addition that
// overflows int returns ErrQuantityOverflow.
func (i *Item) UpdateQuantity(delta int) error {
	next := i.Quantity + delta
	if delta > 0 && next < i.Quantity {
		return fmt.Errorf("cannot add %d to %q (current %d): %w",
			delta, i.Name, i.Quantity, ErrQuantityOverflow)
	}
	if next < 0 {
		return fmt.Errorf("cannot reduce %q below zero (current %d, change %d): %w",
			i.Name, i.Quantity, delta, ErrNegativeQuantity)
	}
	i.Quantity = next
	return nil
}
