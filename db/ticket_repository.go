package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"booking/entities"

	"github.com/google/uuid"
)

type ITicketRepository interface {
	Create(ctx context.Context, ticket entities.Ticket) (entities.TicketCreateResponse, error)
	ByID(ctx context.Context, ticketID uuid.UUID) (entities.Ticket, error)
	ForEvent(ctx context.Context, eventID uuid.UUID) ([]entities.Ticket, error)
	Update(ctx context.Context, ticket entities.Ticket) (entities.Ticket, error)
	Delete(ctx context.Context, ticketID uuid.UUID) error
}

type TicketRepository struct {
	db *DB
}

func NewTicketRepository(db *DB) TicketRepository {
	if db == nil {
		panic("db is nil")
	}
	return TicketRepository{
		db: db,
	}
}

func (tr TicketRepository) Create(ctx context.Context, ticket entities.Ticket) (entities.TicketCreateResponse, error) {
	var ticketID uuid.UUID
	err := tr.db.Conn.QueryRowContext(
		ctx,
		`
		INSERT INTO tickets (event_id, name, price_amount, price_currency, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ticket_id`,
		ticket.EventID, ticket.Name, ticket.Price.Amount, ticket.Price.Currency, ticket.Quantity,
	).Scan(&ticketID)
	if err != nil {
		return entities.TicketCreateResponse{}, fmt.Errorf("could not save ticket: %w", err)
	}

	return entities.TicketCreateResponse{TicketID: ticketID}, nil
}

func (tr TicketRepository) ByID(ctx context.Context, ticketID uuid.UUID) (entities.Ticket, error) {
	var ticket entities.Ticket
	err := tr.db.Conn.GetContext(ctx, &ticket, `
		SELECT
		    ticket_id,
		    event_id,
		    name,
		    price_amount AS "price.amount",
		    price_currency AS "price.currency",
		    quantity
		FROM tickets
		WHERE ticket_id = $1
	`, ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Ticket{}, entities.ErrTicketNotFound
	}
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not get ticket: %w", err)
	}

	return ticket, nil
}

func (tr TicketRepository) ForEvent(ctx context.Context, eventID uuid.UUID) ([]entities.Ticket, error) {
	var tickets []entities.Ticket
	err := tr.db.Conn.SelectContext(ctx, &tickets, `
		SELECT
		    ticket_id,
		    event_id,
		    name,
		    price_amount AS "price.amount",
		    price_currency AS "price.currency",
		    quantity
		FROM tickets
		WHERE event_id = $1
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("could not get tickets for event: %w", err)
	}

	return tickets, nil
}

// Update changes a ticket's name, price and quantity. The ticket row is
// locked while the committed booking quantity is checked, so the quantity
// can never be lowered below what active bookings already hold.
func (tr TicketRepository) Update(ctx context.Context, ticket entities.Ticket) (updated entities.Ticket, err error) {
	tx, err := tr.db.Conn.BeginTxx(ctx, nil)
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	var lockedID uuid.UUID
	err = tx.GetContext(ctx, &lockedID, `
		SELECT ticket_id FROM tickets WHERE ticket_id = $1 FOR UPDATE
	`, ticket.TicketID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Ticket{}, entities.ErrTicketNotFound
	}
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not lock ticket: %w", err)
	}

	bookedQuantity := 0
	err = tx.GetContext(ctx, &bookedQuantity, `
		SELECT coalesce(SUM(quantity), 0)
		FROM bookings
		WHERE ticket_id = $1 AND status IN ('pending', 'confirmed')
	`, ticket.TicketID)
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not sum booked quantity: %w", err)
	}
	if ticket.Quantity < bookedQuantity {
		return entities.Ticket{}, entities.ErrQuantityCommitted
	}

	updated = ticket
	err = tx.GetContext(ctx, &updated, `
		UPDATE tickets
		SET name = $2, price_amount = $3, price_currency = $4, quantity = $5
		WHERE ticket_id = $1
		RETURNING
		    ticket_id,
		    event_id,
		    name,
		    price_amount AS "price.amount",
		    price_currency AS "price.currency",
		    quantity
	`, ticket.TicketID, ticket.Name, ticket.Price.Amount, ticket.Price.Currency, ticket.Quantity)
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not update ticket: %w", err)
	}

	return updated, nil
}

func (tr TicketRepository) Delete(ctx context.Context, ticketID uuid.UUID) error {
	res, err := tr.db.Conn.ExecContext(ctx, `DELETE FROM tickets WHERE ticket_id = $1`, ticketID)
	if err != nil {
		if isErrorForeignKeyViolation(err) {
			return entities.ErrTicketHasBookings
		}
		return fmt.Errorf("could not delete ticket: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrTicketNotFound
	}
	return nil
}
