package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountCents(t *testing.T) {
	tests := []struct {
		fee      float64
		expected int64
	}{
		{10, 1000},
		{0, 0},
		{19.99, 1999},
		{0.1, 10},
		{33.335, 3334}, // rounds, never truncates
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, AmountCents(tt.fee), "fee %v", tt.fee)
	}
}

func TestStripeProvider_NotConfigured(t *testing.T) {
	p := NewStripeProvider("")
	secret, err := p.CreateIntent(context.Background(), 1000, Currency)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, secret)
}
