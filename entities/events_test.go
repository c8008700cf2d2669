package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEventHeader(t *testing.T) {
	a := NewEventHeader()
	b := NewEventHeader()

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.IdempotencyKey, b.IdempotencyKey)
	assert.False(t, a.PublishedAt.IsZero())
}

func TestNewEventHeaderWithIdempotencyKey(t *testing.T) {
	key := "2f0b3a52-6a39-4f1a-aaaa-000000000001"

	a := NewEventHeaderWithIdempotencyKey(key)
	b := NewEventHeaderWithIdempotencyKey(key)

	assert.Equal(t, key, a.IdempotencyKey)
	assert.Equal(t, key, b.IdempotencyKey)
	assert.NotEqual(t, a.ID, b.ID)
}
