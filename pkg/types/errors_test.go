package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("distribute: %w", &StockError{Item: "Rice", Available: 45, Requested: 1000})

	assert.ErrorIs(t, err, ErrInsufficientStock)

	var se *StockError
	if assert.True(t, errors.As(err, &se)) {
		assert.Equal(t, 45, se.Available)
		assert.Equal(t, 1000, se.Requested)
	}
	assert.Equal(t, "Not enough 'Rice' in stock. Available: 45, requested: 1000", se.Error())
}
