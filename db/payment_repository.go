package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"booking/entities"
	"booking/message/event"
	"booking/message/outbox"
	"booking/payments"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
)

type IPaymentRepository interface {
	Settle(ctx context.Context, bookingID, userID uuid.UUID, method string) (entities.Payment, error)
	ByID(ctx context.Context, paymentID, userID uuid.UUID) (entities.Payment, error)
}

type PaymentRepository struct {
	db      *DB
	gateway payments.Gateway
}

func NewPaymentRepository(db *DB, gateway payments.Gateway) PaymentRepository {
	if db == nil {
		panic("db is nil")
	}
	if gateway == nil {
		panic("gateway is nil")
	}
	return PaymentRepository{
		db:      db,
		gateway: gateway,
	}
}

// Settle resolves a pending booking's payment. Exactly one payment row is
// created per settlement, whatever the gateway outcome; a booking with any
// payment row counts as already processed. The booking row stays locked for
// the whole settlement so a concurrent cancellation observes the final state.
func (pr PaymentRepository) Settle(ctx context.Context, bookingID, userID uuid.UUID, method string) (payment entities.Payment, err error) {
	tx, err := pr.db.Conn.BeginTxx(ctx, nil)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	var booking entities.Booking
	err = tx.GetContext(ctx, &booking, `
		SELECT booking_id, user_id, ticket_id, quantity, status, created_at, updated_at
		FROM bookings
		WHERE booking_id = $1
		FOR UPDATE
	`, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Payment{}, entities.ErrBookingNotFound
	}
	if err != nil {
		return entities.Payment{}, fmt.Errorf("could not lock booking: %w", err)
	}

	if booking.UserID != userID {
		return entities.Payment{}, entities.ErrNotOwner
	}
	if booking.Status != entities.BookingStatusPending {
		return entities.Payment{}, entities.ErrNotPending
	}

	var hasPayment bool
	err = tx.GetContext(ctx, &hasPayment, `
		SELECT EXISTS (SELECT 1 FROM payments WHERE booking_id = $1)
	`, bookingID)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("could not check existing payment: %w", err)
	}
	if hasPayment {
		return entities.Payment{}, entities.ErrAlreadyProcessed
	}

	var price entities.Money
	err = tx.GetContext(ctx, &price, `
		SELECT price_amount AS "amount", price_currency AS "currency"
		FROM tickets
		WHERE ticket_id = $1
	`, booking.TicketID)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("could not get ticket price: %w", err)
	}

	amount := booking.TotalAmount(price)
	if validationErr := pr.gateway.ValidateAmount(amount); validationErr != nil {
		return entities.Payment{}, validationErr
	}

	charged, err := pr.gateway.Charge(ctx, amount, method)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("payment gateway failure: %w", err)
	}

	status := entities.PaymentStatusFailed
	if charged {
		status = entities.PaymentStatusSuccess
	}

	payment = entities.Payment{
		BookingID: bookingID,
		Amount:    amount,
		Method:    method,
		Status:    status,
	}
	err = tx.GetContext(ctx, &payment, `
		INSERT INTO
		    payments (booking_id, amount, currency, method, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING
		    payment_id,
		    booking_id,
		    amount AS "amount.amount",
		    currency AS "amount.currency",
		    method,
		    status,
		    created_at
	`, bookingID, amount.Amount, amount.Currency, method, status)
	if err != nil {
		if isErrorUniqueViolation(err) {
			return entities.Payment{}, entities.ErrAlreadyProcessed
		}
		return entities.Payment{}, fmt.Errorf("could not insert payment: %w", err)
	}

	if charged {
		_, err = tx.ExecContext(ctx, `
			UPDATE bookings SET status = 'confirmed', updated_at = now() WHERE booking_id = $1
		`, bookingID)
		if err != nil {
			return entities.Payment{}, fmt.Errorf("could not confirm booking: %w", err)
		}

		outboxPublisher, pubErr := outbox.NewPublisherForDb(ctx, tx)
		if pubErr != nil {
			err = fmt.Errorf("could not create outbox publisher: %w", pubErr)
			return entities.Payment{}, err
		}
		// at most one settlement per booking, so the booking id is a stable
		// idempotency key for downstream consumers
		err = event.NewBus(outboxPublisher).Publish(ctx, entities.BookingConfirmed_v1{
			Header:    entities.NewEventHeaderWithIdempotencyKey(bookingID.String()),
			BookingID: bookingID,
			UserID:    booking.UserID,
			TicketID:  booking.TicketID,
			Quantity:  booking.Quantity,
			PaymentID: payment.PaymentID,
			Amount:    amount,
		})
		if err != nil {
			return entities.Payment{}, fmt.Errorf("could not publish BookingConfirmed_v1: %w", err)
		}
	}

	log.FromContext(ctx).WithFields(map[string]any{
		"payment_id": payment.PaymentID,
		"booking_id": bookingID,
		"amount":     payment.Amount.Amount,
		"status":     payment.Status,
	}).Info("Payment processed")

	return payment, nil
}

func (pr PaymentRepository) ByID(ctx context.Context, paymentID, userID uuid.UUID) (entities.Payment, error) {
	var row struct {
		entities.Payment
		UserID uuid.UUID `db:"user_id"`
	}
	err := pr.db.Conn.GetContext(ctx, &row, `
		SELECT
		    p.payment_id,
		    p.booking_id,
		    p.amount AS "amount.amount",
		    p.currency AS "amount.currency",
		    p.method,
		    p.status,
		    p.created_at,
		    b.user_id
		FROM payments p
		JOIN bookings b ON b.booking_id = p.booking_id
		WHERE p.payment_id = $1
	`, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Payment{}, entities.ErrPaymentNotFound
	}
	if err != nil {
		return entities.Payment{}, fmt.Errorf("could not get payment: %w", err)
	}

	if row.UserID != userID {
		return entities.Payment{}, entities.ErrNotOwner
	}

	return row.Payment, nil
}
