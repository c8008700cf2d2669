package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAvailableCapacity(t *testing.T) {
	assert.Equal(t, 10, AvailableCapacity(10, 0))
	assert.Equal(t, 3, AvailableCapacity(10, 7))
	assert.Equal(t, 0, AvailableCapacity(10, 10))
	assert.Equal(t, 0, AvailableCapacity(10, 15))
}

func TestIsAvailable(t *testing.T) {
	ticket := Ticket{Quantity: 10}

	assert.True(t, ticket.IsAvailable(1, 0))
	assert.True(t, ticket.IsAvailable(10, 0))
	assert.True(t, ticket.IsAvailable(3, 7))

	assert.False(t, ticket.IsAvailable(0, 0), "zero quantity is never available")
	assert.False(t, ticket.IsAvailable(-1, 0))
	assert.False(t, ticket.IsAvailable(4, 7))
	assert.False(t, ticket.IsAvailable(1, 10), "fully booked ticket rejects any request")
}

func TestTotalAmount(t *testing.T) {
	price := NewMoney(decimal.RequireFromString("19.99"), "USD")
	booking := Booking{Quantity: 3}

	total := booking.TotalAmount(price)

	assert.True(t, total.Amount.Equal(decimal.RequireFromString("59.97")), "got %s", total.Amount)
	assert.Equal(t, "USD", total.Currency)
}
