package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyMul(t *testing.T) {
	price := NewMoney(decimal.RequireFromString("0.10"), "EUR")

	// 0.10 * 3 must be exactly 0.30, not a float approximation
	total := price.Mul(3)
	assert.True(t, total.Amount.Equal(decimal.RequireFromString("0.30")), "got %s", total.Amount)

	total = price.Mul(1)
	assert.True(t, total.Amount.Equal(price.Amount))
}

func TestMoneyIsPositive(t *testing.T) {
	assert.True(t, NewMoney(decimal.RequireFromString("0.01"), "EUR").IsPositive())
	assert.False(t, NewMoney(decimal.Zero, "EUR").IsPositive())
	assert.False(t, NewMoney(decimal.RequireFromString("-5"), "EUR").IsPositive())
}
