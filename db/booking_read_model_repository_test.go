package db

import (
	"context"
	"testing"

	"booking/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpsBookingProjection(t *testing.T) {
	db := getDb(t)
	readModel := NewOpsBookingReadModel(db)
	ctx := context.Background()

	bookingID := uuid.New()
	userID := uuid.New()
	ticketID := uuid.New()
	paymentID := uuid.New()
	amount := entities.NewMoney(decimal.RequireFromString("59.97"), "USD")

	made := &entities.BookingMade_v1{
		Header:    entities.NewEventHeader(),
		BookingID: bookingID,
		UserID:    userID,
		TicketID:  ticketID,
		Quantity:  3,
		UnitPrice: entities.NewMoney(decimal.RequireFromString("19.99"), "USD"),
	}
	require.NoError(t, readModel.OnBookingMade(ctx, made))

	rm, err := readModel.GetByID(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, string(entities.BookingStatusPending), rm.Status)
	assert.Equal(t, 3, rm.Quantity)

	// replaying the same event is a no-op
	require.NoError(t, readModel.OnBookingMade(ctx, made))

	require.NoError(t, readModel.OnBookingConfirmed(ctx, &entities.BookingConfirmed_v1{
		Header:    entities.NewEventHeader(),
		BookingID: bookingID,
		UserID:    userID,
		TicketID:  ticketID,
		Quantity:  3,
		PaymentID: paymentID,
		Amount:    amount,
	}))

	rm, err = readModel.GetByID(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, string(entities.BookingStatusConfirmed), rm.Status)
	assert.Equal(t, paymentID.String(), rm.PaymentID)
	assert.Equal(t, "59.97", rm.AmountPaid)
	assert.Equal(t, "USD", rm.Currency)

	require.NoError(t, readModel.OnPaymentRefunded(ctx, &entities.PaymentRefunded_v1{
		Header:    entities.NewEventHeader(),
		PaymentID: paymentID,
		BookingID: bookingID,
		Amount:    amount,
	}))
	require.NoError(t, readModel.OnBookingCanceled(ctx, &entities.BookingCanceled_v1{
		Header:       entities.NewEventHeader(),
		BookingID:    bookingID,
		UserID:       userID,
		TicketID:     ticketID,
		Quantity:     3,
		RefundIssued: true,
	}))

	rm, err = readModel.GetByID(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, string(entities.BookingStatusCancelled), rm.Status)
	assert.Equal(t, string(entities.PaymentStatusRefunded), rm.PaymentStatus)
	assert.False(t, rm.CanceledAt.IsZero())
	assert.False(t, rm.RefundedAt.IsZero())
}

func TestOpsBookingProjectionOutOfOrder(t *testing.T) {
	db := getDb(t)
	readModel := NewOpsBookingReadModel(db)
	ctx := context.Background()

	// a confirmation arriving before the read model exists must error so the
	// message router retries it
	err := readModel.OnBookingConfirmed(ctx, &entities.BookingConfirmed_v1{
		Header:    entities.NewEventHeader(),
		BookingID: uuid.New(),
		PaymentID: uuid.New(),
		Amount:    entities.NewMoney(decimal.NewFromInt(10), "USD"),
	})
	assert.Error(t, err)
}

func TestOpsBookingGetByIDUnknown(t *testing.T) {
	db := getDb(t)
	readModel := NewOpsBookingReadModel(db)

	_, err := readModel.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrBookingNotFound)
}
