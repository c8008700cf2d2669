package db

import (
	"context"
	"testing"

	"booking/entities"
	"booking/payments"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleConfirmsBooking(t *testing.T) {
	db := getDb(t)
	gateway := &payments.GatewayMock{ChargeResult: true}
	bookingRepo := NewBookingRepository(db, gateway)
	paymentRepo := NewPaymentRepository(db, gateway)
	ctx := context.Background()

	ticket := createTestTicket(t, db, 10, "19.99")
	userID := uuid.New()

	booking, err := bookingRepo.Create(ctx, entities.Booking{
		BookingID: uuid.New(),
		UserID:    userID,
		TicketID:  ticket.TicketID,
		Quantity:  3,
	})
	require.NoError(t, err)

	payment, err := paymentRepo.Settle(ctx, booking.BookingID, userID, "card")
	require.NoError(t, err)

	assert.Equal(t, entities.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, "card", payment.Method)
	assert.True(t, payment.Amount.Amount.Equal(decimal.RequireFromString("59.97")), "got %s", payment.Amount.Amount)
	assert.Equal(t, "USD", payment.Amount.Currency)

	var status entities.BookingStatus
	err = db.Conn.GetContext(ctx, &status, `SELECT status FROM bookings WHERE booking_id = $1`, booking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusConfirmed, status)
}

func TestSettleDeclinedKeepsBookingPending(t *testing.T) {
	db := getDb(t)
	gateway := &payments.GatewayMock{ChargeResult: false}
	bookingRepo := NewBookingRepository(db, gateway)
	paymentRepo := NewPaymentRepository(db, gateway)
	ctx := context.Background()

	ticket := createTestTicket(t, db, 10, "19.99")
	userID := uuid.New()

	booking, err := bookingRepo.Create(ctx, entities.Booking{
		BookingID: uuid.New(),
		UserID:    userID,
		TicketID:  ticket.TicketID,
		Quantity:  1,
	})
	require.NoError(t, err)

	payment, err := paymentRepo.Settle(ctx, booking.BookingID, userID, "card")
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentStatusFailed, payment.Status)

	var status entities.BookingStatus
	err = db.Conn.GetContext(ctx, &status, `SELECT status FROM bookings WHERE booking_id = $1`, booking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusPending, status)

	// a failed payment row still counts as processed
	_, err = paymentRepo.Settle(ctx, booking.BookingID, userID, "card")
	assert.ErrorIs(t, err, entities.ErrAlreadyProcessed)
}

func TestSettleGuards(t *testing.T) {
	db := getDb(t)
	gateway := &payments.GatewayMock{ChargeResult: true, RefundResult: true}
	bookingRepo := NewBookingRepository(db, gateway)
	paymentRepo := NewPaymentRepository(db, gateway)
	ctx := context.Background()

	ticket := createTestTicket(t, db, 10, "19.99")
	userID := uuid.New()

	booking, err := bookingRepo.Create(ctx, entities.Booking{
		BookingID: uuid.New(),
		UserID:    userID,
		TicketID:  ticket.TicketID,
		Quantity:  1,
	})
	require.NoError(t, err)

	_, err = paymentRepo.Settle(ctx, uuid.New(), userID, "card")
	assert.ErrorIs(t, err, entities.ErrBookingNotFound)

	_, err = paymentRepo.Settle(ctx, booking.BookingID, uuid.New(), "card")
	assert.ErrorIs(t, err, entities.ErrNotOwner)

	_, err = bookingRepo.Cancel(ctx, booking.BookingID, userID)
	require.NoError(t, err)

	_, err = paymentRepo.Settle(ctx, booking.BookingID, userID, "card")
	assert.ErrorIs(t, err, entities.ErrNotPending)
}

func TestSettleAlreadyProcessed(t *testing.T) {
	db := getDb(t)
	gateway := &payments.GatewayMock{ChargeResult: true}
	bookingRepo := NewBookingRepository(db, gateway)
	paymentRepo := NewPaymentRepository(db, gateway)
	ctx := context.Background()

	ticket := createTestTicket(t, db, 10, "19.99")
	userID := uuid.New()

	booking, err := bookingRepo.Create(ctx, entities.Booking{
		BookingID: uuid.New(),
		UserID:    userID,
		TicketID:  ticket.TicketID,
		Quantity:  1,
	})
	require.NoError(t, err)

	_, err = paymentRepo.Settle(ctx, booking.BookingID, userID, "card")
	require.NoError(t, err)

	// confirmed guard fires first, but the payment row blocks a retry either way
	_, err = paymentRepo.Settle(ctx, booking.BookingID, userID, "card")
	assert.Error(t, err)

	assert.Len(t, gateway.Charges, 1, "the gateway is charged exactly once")
}

func TestPaymentByID(t *testing.T) {
	db := getDb(t)
	gateway := &payments.GatewayMock{ChargeResult: true}
	bookingRepo := NewBookingRepository(db, gateway)
	paymentRepo := NewPaymentRepository(db, gateway)
	ctx := context.Background()

	ticket := createTestTicket(t, db, 10, "19.99")
	userID := uuid.New()

	booking, err := bookingRepo.Create(ctx, entities.Booking{
		BookingID: uuid.New(),
		UserID:    userID,
		TicketID:  ticket.TicketID,
		Quantity:  2,
	})
	require.NoError(t, err)

	payment, err := paymentRepo.Settle(ctx, booking.BookingID, userID, "paypal")
	require.NoError(t, err)

	got, err := paymentRepo.ByID(ctx, payment.PaymentID, userID)
	require.NoError(t, err)
	assert.Equal(t, payment.PaymentID, got.PaymentID)
	assert.Equal(t, booking.BookingID, got.BookingID)
	assert.True(t, got.Amount.Amount.Equal(payment.Amount.Amount))

	_, err = paymentRepo.ByID(ctx, payment.PaymentID, uuid.New())
	assert.ErrorIs(t, err, entities.ErrNotOwner)

	_, err = paymentRepo.ByID(ctx, uuid.New(), userID)
	assert.ErrorIs(t, err, entities.ErrPaymentNotFound)
}
