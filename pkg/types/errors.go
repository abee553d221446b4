package types

import (
	"errors"
	"fmt"
)

// Validation errors. Returned before any mutation happens.
var (
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrNegativeQuantity     = errors.New("quantity cannot go below zero")
	ErrQuantityOverflow     = errors.New("quantity too large")
	ErrInvalidHouseholdSize = errors.New("household size must be positive")
	ErrInvalidName          = errors.New("name must not be empty")
)

// Lookup errors.
var (
	ErrItemNotFound       = errors.New("item not found")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrDuplicateRecipient = errors.New("recipient already registered")
)

// ErrInsufficientStock is matched by every *StockError.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrCorruptData reports a backing store whose content cannot be decoded.
var ErrCorruptData = errors.New("corrupt pantry data")

// StockError reports a distribution that asked for more than is on hand.
type StockError struct {
	Item      string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Not enough '%s' in stock. Available: %d, requested: %d",
		e.Item, e.Available, e.Requested)
}

// Unwrap lets errors.Is match ErrInsufficientStock.
func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}
