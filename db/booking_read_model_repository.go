package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"booking/entities"

	"github.com/google/uuid"
)

type OpsBookingReadModel struct {
	conn *DB
}

func NewOpsBookingReadModel(db *DB) OpsBookingReadModel {
	if db == nil {
		panic("db is nil")
	}
	return OpsBookingReadModel{
		conn: db,
	}
}

// OnBookingMade is the first event for a booking, so it creates the read model.
func (r OpsBookingReadModel) OnBookingMade(ctx context.Context, event *entities.BookingMade_v1) error {
	err := r.createReadModel(ctx, entities.OpsBooking{
		BookingID:   event.BookingID,
		UserID:      event.UserID,
		TicketID:    event.TicketID,
		Quantity:    event.Quantity,
		Status:      string(entities.BookingStatusPending),
		BookedAt:    event.Header.PublishedAt,
		LastUpdated: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("could not create read model: %w", err)
	}

	return nil
}

func (r OpsBookingReadModel) OnBookingConfirmed(ctx context.Context, event *entities.BookingConfirmed_v1) error {
	return r.updateReadModel(ctx, event.BookingID, func(rm entities.OpsBooking) (entities.OpsBooking, error) {
		rm.Status = string(entities.BookingStatusConfirmed)
		rm.PaymentID = event.PaymentID.String()
		rm.PaymentStatus = string(entities.PaymentStatusSuccess)
		rm.AmountPaid = event.Amount.Amount.StringFixed(2)
		rm.Currency = event.Amount.Currency

		return rm, nil
	})
}

func (r OpsBookingReadModel) OnBookingCanceled(ctx context.Context, event *entities.BookingCanceled_v1) error {
	return r.updateReadModel(ctx, event.BookingID, func(rm entities.OpsBooking) (entities.OpsBooking, error) {
		rm.Status = string(entities.BookingStatusCancelled)
		rm.CanceledAt = event.Header.PublishedAt

		return rm, nil
	})
}

func (r OpsBookingReadModel) OnPaymentRefunded(ctx context.Context, event *entities.PaymentRefunded_v1) error {
	return r.updateReadModel(ctx, event.BookingID, func(rm entities.OpsBooking) (entities.OpsBooking, error) {
		rm.PaymentStatus = string(entities.PaymentStatusRefunded)
		rm.RefundedAt = event.Header.PublishedAt

		return rm, nil
	})
}

func (r OpsBookingReadModel) GetAll(ctx context.Context) ([]entities.OpsBooking, error) {
	rows, err := r.conn.Conn.QueryContext(ctx, `
		SELECT payload FROM read_model_ops_bookings
	`)
	if err != nil {
		return nil, fmt.Errorf("could not get ops bookings: %w", err)
	}
	defer rows.Close()

	var result []entities.OpsBooking
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("could not scan ops booking: %w", err)
		}

		var rm entities.OpsBooking
		if err := json.Unmarshal(payload, &rm); err != nil {
			return nil, fmt.Errorf("could not unmarshal ops booking: %w", err)
		}

		result = append(result, rm)
	}

	return result, rows.Err()
}

func (r OpsBookingReadModel) GetByID(ctx context.Context, bookingID uuid.UUID) (entities.OpsBooking, error) {
	var payload []byte
	err := r.conn.Conn.QueryRowContext(ctx, `
		SELECT payload FROM read_model_ops_bookings WHERE booking_id = $1
	`, bookingID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.OpsBooking{}, entities.ErrBookingNotFound
	}
	if err != nil {
		return entities.OpsBooking{}, fmt.Errorf("could not get ops booking: %w", err)
	}

	var rm entities.OpsBooking
	if err := json.Unmarshal(payload, &rm); err != nil {
		return entities.OpsBooking{}, fmt.Errorf("could not unmarshal ops booking: %w", err)
	}

	return rm, nil
}

func (r OpsBookingReadModel) createReadModel(ctx context.Context, opsBooking entities.OpsBooking) error {
	payload, err := json.Marshal(opsBooking)
	if err != nil {
		return err
	}

	_, err = r.conn.Conn.ExecContext(ctx, `
		INSERT INTO
		    read_model_ops_bookings (payload, booking_id)
		VALUES
			($1, $2)
		ON CONFLICT (booking_id) DO NOTHING; -- another event may have created it already
`, payload, opsBooking.BookingID)
	if err != nil {
		return fmt.Errorf("could not create read model: %w", err)
	}

	return nil
}

func (r OpsBookingReadModel) updateReadModel(
	ctx context.Context,
	bookingID uuid.UUID,
	updateFunc func(rm entities.OpsBooking) (entities.OpsBooking, error),
) (err error) {
	tx, err := r.conn.Conn.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
	})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	var payload []byte
	err = tx.QueryRowContext(ctx, `
		SELECT payload FROM read_model_ops_bookings WHERE booking_id = $1 FOR UPDATE
	`, bookingID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		// events may arrive out of order; the projection is retried by the router
		return fmt.Errorf("read model for booking %s not created yet: %w", bookingID, err)
	}
	if err != nil {
		return fmt.Errorf("could not get read model: %w", err)
	}

	var rm entities.OpsBooking
	if err = json.Unmarshal(payload, &rm); err != nil {
		return fmt.Errorf("could not unmarshal read model: %w", err)
	}

	updated, err := updateFunc(rm)
	if err != nil {
		return err
	}

	updated.LastUpdated = time.Now().UTC()
	newPayload, err := json.Marshal(updated)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE read_model_ops_bookings SET payload = $2 WHERE booking_id = $1
	`, bookingID, newPayload)
	if err != nil {
		return fmt.Errorf("could not update read model: %w", err)
	}

	return nil
}
