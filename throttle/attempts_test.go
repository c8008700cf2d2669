package throttle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"booking/entities"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTouchSetsMarker(t *testing.T) {
	client, mock := redismock.NewClientMock()
	attempts := NewAttempts(client, time.Minute)

	userID := uuid.New()
	ticketID := uuid.New()
	key := fmt.Sprintf("booking_attempt:%s:%s", userID, ticketID)

	mock.Regexp().ExpectSetNX(key, `\d+`, time.Minute).SetVal(true)

	err := attempts.Touch(context.Background(), userID, ticketID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTouchRejectsWhileMarkerLives(t *testing.T) {
	client, mock := redismock.NewClientMock()
	attempts := NewAttempts(client, time.Minute)

	userID := uuid.New()
	ticketID := uuid.New()
	key := fmt.Sprintf("booking_attempt:%s:%s", userID, ticketID)

	mock.Regexp().ExpectSetNX(key, `\d+`, time.Minute).SetVal(false)

	err := attempts.Touch(context.Background(), userID, ticketID)
	assert.ErrorIs(t, err, entities.ErrTooManyAttempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTouchIsScopedPerUserAndTicket(t *testing.T) {
	client, mock := redismock.NewClientMock()
	attempts := NewAttempts(client, time.Minute)

	userID := uuid.New()
	firstTicket := uuid.New()
	secondTicket := uuid.New()

	mock.Regexp().ExpectSetNX(fmt.Sprintf("booking_attempt:%s:%s", userID, firstTicket), `\d+`, time.Minute).SetVal(true)
	mock.Regexp().ExpectSetNX(fmt.Sprintf("booking_attempt:%s:%s", userID, secondTicket), `\d+`, time.Minute).SetVal(true)

	require.NoError(t, attempts.Touch(context.Background(), userID, firstTicket))
	require.NoError(t, attempts.Touch(context.Background(), userID, secondTicket))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewAttemptsDefaultsCooldown(t *testing.T) {
	client, _ := redismock.NewClientMock()

	attempts := NewAttempts(client, 0)
	assert.Equal(t, DefaultCooldown, attempts.cooldown)
}
