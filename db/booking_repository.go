package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"booking/entities"
	"booking/message/event"
	"booking/message/outbox"
	"booking/monitoring"
	"booking/payments"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
)

type IBookingRepository interface {
	Create(ctx context.Context, booking entities.Booking) (entities.Booking, error)
	Cancel(ctx context.Context, bookingID, userID uuid.UUID) (entities.Booking, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entities.BookingWithPayment, error)
}

type BookingRepository struct {
	db      *DB
	gateway payments.Gateway
}

func NewBookingRepository(db *DB, gateway payments.Gateway) BookingRepository {
	if db == nil {
		panic("db is nil")
	}
	if gateway == nil {
		panic("gateway is nil")
	}
	return BookingRepository{
		db:      db,
		gateway: gateway,
	}
}

// Create admits a booking request. The ticket row is locked for the whole
// check-and-insert, so two concurrent admissions on the same ticket cannot
// both pass the capacity check.
func (br BookingRepository) Create(ctx context.Context, booking entities.Booking) (created entities.Booking, err error) {
	tx, err := br.db.Conn.BeginTxx(ctx, nil)
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	var ticket entities.Ticket
	err = tx.GetContext(ctx, &ticket, `
		SELECT
		    ticket_id,
		    event_id,
		    name,
		    price_amount AS "price.amount",
		    price_currency AS "price.currency",
		    quantity
		FROM
		    tickets
		WHERE
		    ticket_id = $1
		FOR UPDATE
	`, booking.TicketID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Booking{}, entities.ErrTicketNotFound
	}
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not lock ticket: %w", err)
	}

	var hasActiveBooking bool
	err = tx.GetContext(ctx, &hasActiveBooking, `
		SELECT EXISTS (
		    SELECT 1
		    FROM bookings
		    WHERE user_id = $1 AND ticket_id = $2 AND status IN ('pending', 'confirmed')
		)
	`, booking.UserID, booking.TicketID)
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not check active bookings: %w", err)
	}
	if hasActiveBooking {
		return entities.Booking{}, entities.ErrDuplicateBooking
	}

	bookedQuantity := 0
	err = tx.GetContext(ctx, &bookedQuantity, `
		SELECT
		    coalesce(SUM(quantity), 0)
		FROM
		    bookings
		WHERE
		    ticket_id = $1 AND status IN ('pending', 'confirmed')
	`, booking.TicketID)
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not sum booked quantity: %w", err)
	}

	if !ticket.IsAvailable(booking.Quantity, bookedQuantity) {
		return entities.Booking{}, entities.ErrInsufficientTickets
	}

	booking.Status = entities.BookingStatusPending
	created = booking
	err = tx.GetContext(ctx, &created, `
		INSERT INTO
		    bookings (booking_id, user_id, ticket_id, quantity, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING booking_id, user_id, ticket_id, quantity, status, created_at, updated_at
	`, booking.BookingID, booking.UserID, booking.TicketID, booking.Quantity, booking.Status)
	if err != nil {
		if isErrorUniqueViolation(err) {
			// lost the race with another admission by the same user
			return entities.Booking{}, entities.ErrDuplicateBooking
		}
		return entities.Booking{}, fmt.Errorf("could not insert booking: %w", err)
	}

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not create outbox publisher: %w", err)
	}
	err = event.NewBus(outboxPublisher).Publish(ctx, entities.BookingMade_v1{
		Header:    entities.NewEventHeader(),
		BookingID: created.BookingID,
		UserID:    created.UserID,
		TicketID:  created.TicketID,
		Quantity:  created.Quantity,
		UnitPrice: ticket.Price,
	})
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not publish BookingMade_v1: %w", err)
	}

	log.FromContext(ctx).WithFields(map[string]any{
		"booking_id":   created.BookingID,
		"user_id":      created.UserID,
		"ticket_id":    created.TicketID,
		"quantity":     created.Quantity,
		"total_amount": created.TotalAmount(ticket.Price).Amount,
	}).Info("Booking created")

	return created, nil
}

// Cancel transitions a booking to cancelled. When a successful payment exists
// its refund is applied in the same transaction, so a cancelled booking with
// a half-applied refund flag can never be observed.
func (br BookingRepository) Cancel(ctx context.Context, bookingID, userID uuid.UUID) (booking entities.Booking, err error) {
	tx, err := br.db.Conn.BeginTxx(ctx, nil)
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	err = tx.GetContext(ctx, &booking, `
		SELECT booking_id, user_id, ticket_id, quantity, status, created_at, updated_at
		FROM bookings
		WHERE booking_id = $1
		FOR UPDATE
	`, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Booking{}, entities.ErrBookingNotFound
	}
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not lock booking: %w", err)
	}

	if booking.UserID != userID {
		return entities.Booking{}, entities.ErrNotOwner
	}
	if booking.Status == entities.BookingStatusCancelled {
		return entities.Booking{}, entities.ErrAlreadyCancelled
	}

	err = tx.GetContext(ctx, &booking, `
		UPDATE bookings
		SET status = 'cancelled', updated_at = now()
		WHERE booking_id = $1
		RETURNING booking_id, user_id, ticket_id, quantity, status, created_at, updated_at
	`, bookingID)
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not cancel booking: %w", err)
	}

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not create outbox publisher: %w", err)
	}
	eventBus := event.NewBus(outboxPublisher)

	refundIssued := false

	var payment entities.Payment
	err = tx.GetContext(ctx, &payment, `
		SELECT
		    payment_id,
		    booking_id,
		    amount AS "amount.amount",
		    currency AS "amount.currency",
		    method,
		    status,
		    created_at
		FROM payments
		WHERE booking_id = $1
		FOR UPDATE
	`, bookingID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = nil
	case err != nil:
		return entities.Booking{}, fmt.Errorf("could not lock payment: %w", err)
	case payment.IsSuccess():
		refunded, refundErr := br.gateway.Refund(ctx, payment.Amount)
		if refundErr != nil {
			err = fmt.Errorf("refund gateway failure: %w", refundErr)
			return entities.Booking{}, err
		}
		if !refunded {
			// refund declined; payment stays success and can be retried later
			log.FromContext(ctx).WithFields(map[string]any{
				"booking_id": bookingID,
				"payment_id": payment.PaymentID,
			}).Warn("Refund declined by gateway, payment left as success")
			monitoring.TrackRefund("declined")
			break
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE payments SET status = 'refunded' WHERE payment_id = $1
		`, payment.PaymentID)
		if err != nil {
			return entities.Booking{}, fmt.Errorf("could not flag payment refunded: %w", err)
		}
		refundIssued = true
		monitoring.TrackRefund("refunded")

		err = eventBus.Publish(ctx, entities.PaymentRefunded_v1{
			Header:    entities.NewEventHeaderWithIdempotencyKey(payment.PaymentID.String()),
			PaymentID: payment.PaymentID,
			BookingID: bookingID,
			Amount:    payment.Amount,
		})
		if err != nil {
			return entities.Booking{}, fmt.Errorf("could not publish PaymentRefunded_v1: %w", err)
		}
	}

	err = eventBus.Publish(ctx, entities.BookingCanceled_v1{
		Header:       entities.NewEventHeader(),
		BookingID:    booking.BookingID,
		UserID:       booking.UserID,
		TicketID:     booking.TicketID,
		Quantity:     booking.Quantity,
		RefundIssued: refundIssued,
	})
	if err != nil {
		return entities.Booking{}, fmt.Errorf("could not publish BookingCanceled_v1: %w", err)
	}

	log.FromContext(ctx).WithFields(map[string]any{
		"booking_id":    booking.BookingID,
		"user_id":       booking.UserID,
		"ticket_id":     booking.TicketID,
		"refund_issued": refundIssued,
	}).Info("Booking cancelled")

	return booking, nil
}

func (br BookingRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]entities.BookingWithPayment, error) {
	var bookings []entities.BookingWithPayment
	err := br.db.Conn.SelectContext(ctx, &bookings, `
		SELECT
		    b.booking_id, b.user_id, b.ticket_id, b.quantity, b.status, b.created_at, b.updated_at,
		    p.payment_id AS payment_id,
		    p.status AS payment_status
		FROM bookings b
		LEFT JOIN payments p ON p.booking_id = b.booking_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list bookings: %w", err)
	}

	return bookings, nil
}
