package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemUpdateQuantity(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		delta   int
		want    int
		wantErr error
	}{
		{name: "add stock", initial: 10, delta: 5, want: 15},
		{name: "remove stock", initial: 10, delta: -4, want: 6},
		{name: "remove exactly all stock", initial: 10, delta: -10, want: 0},
		{name: "zero delta", initial: 3, delta: 0, want: 3},
		{name: "below zero rejected", initial: 10, delta: -11, want: 10, wantErr: ErrNegativeQuantity},
		{name: "empty item below zero rejected", initial: 0, delta: -1, want: 0, wantErr: ErrNegativeQuantity},
		{name: "overflow rejected", initial: math.MaxInt, delta: 1, want: math.MaxInt, wantErr: ErrQuantityOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &Item{Name: "Rice", Category: "Grains", Quantity: tt.initial}

			err := item.UpdateQuantity(tt.delta)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, item.Quantity)
			assert.Equal(t, "Grains", item.Category, "category must not change")
		})
	}
}

func TestItemUpdateQuantityOverflowIsNotReportedAsNegative(t *testing.T) {
	item := &Item{Name: "Rice", Quantity: math.MaxInt}

	err := item.UpdateQuantity(math.MaxInt)

	assert.ErrorIs(t, err, ErrQuantityOverflow)
	assert.NotErrorIs(t, err, ErrNegativeQuantity)
	assert.Equal(t, math.MaxInt, item.Quantity)
}
