package entities

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	EventID   uuid.UUID `json:"event_id" db:"event_id"`
	Title     string    `json:"title" db:"title"`
	Venue     string    `json:"venue" db:"venue"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	CreatedBy uuid.UUID `json:"created_by" db:"created_by"`
}

type EventCreateResponse struct {
	EventID uuid.UUID `json:"event_id"`
}
