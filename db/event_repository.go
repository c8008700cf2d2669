package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"booking/entities"

	"github.com/google/uuid"
)

type IEventRepository interface {
	Create(ctx context.Context, event entities.Event) (entities.EventCreateResponse, error)
	ByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error)
	List(ctx context.Context) ([]entities.Event, error)
	Update(ctx context.Context, event entities.Event) (entities.Event, error)
	Delete(ctx context.Context, eventID uuid.UUID) error
}

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) EventRepository {
	if db == nil {
		panic("db is nil")
	}
	return EventRepository{
		db: db,
	}
}

func (er EventRepository) Create(ctx context.Context, event entities.Event) (entities.EventCreateResponse, error) {
	var eventID uuid.UUID
	err := er.db.Conn.QueryRowContext(
		ctx,
		`
		INSERT INTO events (title, venue, start_time, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING event_id`,
		event.Title, event.Venue, event.StartTime, event.CreatedBy,
	).Scan(&eventID)
	if err != nil {
		return entities.EventCreateResponse{}, fmt.Errorf("could not save event: %w", err)
	}

	return entities.EventCreateResponse{EventID: eventID}, nil
}

func (er EventRepository) ByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error) {
	var event entities.Event
	err := er.db.Conn.GetContext(ctx, &event, `
		SELECT event_id, title, venue, start_time, created_by
		FROM events
		WHERE event_id = $1
	`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Event{}, entities.ErrEventNotFound
	}
	if err != nil {
		return entities.Event{}, fmt.Errorf("could not get event: %w", err)
	}

	return event, nil
}

func (er EventRepository) List(ctx context.Context) ([]entities.Event, error) {
	var events []entities.Event
	err := er.db.Conn.SelectContext(ctx, &events, `
		SELECT event_id, title, venue, start_time, created_by
		FROM events
		ORDER BY start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("could not list events: %w", err)
	}

	return events, nil
}

func (er EventRepository) Update(ctx context.Context, event entities.Event) (entities.Event, error) {
	updated := event
	err := er.db.Conn.GetContext(ctx, &updated, `
		UPDATE events
		SET title = $2, venue = $3, start_time = $4
		WHERE event_id = $1
		RETURNING event_id, title, venue, start_time, created_by
	`, event.EventID, event.Title, event.Venue, event.StartTime)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Event{}, entities.ErrEventNotFound
	}
	if err != nil {
		return entities.Event{}, fmt.Errorf("could not update event: %w", err)
	}

	return updated, nil
}

func (er EventRepository) Delete(ctx context.Context, eventID uuid.UUID) error {
	res, err := er.db.Conn.ExecContext(ctx, `DELETE FROM events WHERE event_id = $1`, eventID)
	if err != nil {
		if isErrorForeignKeyViolation(err) {
			return entities.ErrEventHasTickets
		}
		return fmt.Errorf("could not delete event: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrEventNotFound
	}
	return nil
}
