package db

import (
	"context"
	"fmt"

	"booking/entities"
)

type IEventLogRepository interface {
	Append(ctx context.Context, entry entities.EventLogEntry) error
}

// EventLogRepository archives every published domain event into an
// append-only table for auditing and later replay.
type EventLogRepository struct {
	db *DB
}

func NewEventLogRepository(db *DB) EventLogRepository {
	if db == nil {
		panic("db is nil")
	}
	return EventLogRepository{
		db: db,
	}
}

func (e EventLogRepository) Append(ctx context.Context, entry entities.EventLogEntry) error {
	_, err := e.db.Conn.ExecContext(ctx, `
		INSERT INTO
		    event_log (event_id, published_at, event_name, event_payload)
		VALUES
		    ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO NOTHING;
`, entry.EventID, entry.PublishedAt, entry.EventName, entry.Payload)
	if err != nil {
		return fmt.Errorf("could not append to event log: %w", err)
	}

	return nil
}
