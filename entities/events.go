package entities

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type IEvent interface {
	IsInternal() bool
}

type BookingMade_v1 struct {
	Header EventHeader `json:"header"`

	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	TicketID  uuid.UUID `json:"ticket_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice Money     `json:"unit_price"`
}

func (e BookingMade_v1) IsInternal() bool { return false }

type BookingConfirmed_v1 struct {
	Header EventHeader `json:"header"`

	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	TicketID  uuid.UUID `json:"ticket_id"`
	Quantity  int       `json:"quantity"`
	PaymentID uuid.UUID `json:"payment_id"`
	Amount    Money     `json:"amount"`
}

func (e BookingConfirmed_v1) IsInternal() bool { return false }

type BookingCanceled_v1 struct {
	Header EventHeader `json:"header"`

	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	TicketID  uuid.UUID `json:"ticket_id"`
	Quantity  int       `json:"quantity"`

	// RefundIssued is true when a successful payment was flipped to refunded
	// in the same transaction that cancelled the booking.
	RefundIssued bool `json:"refund_issued"`
}

func (e BookingCanceled_v1) IsInternal() bool { return false }

type PaymentRefunded_v1 struct {
	Header EventHeader `json:"header"`

	PaymentID uuid.UUID `json:"payment_id"`
	BookingID uuid.UUID `json:"booking_id"`
	Amount    Money     `json:"amount"`
}

func (e PaymentRefunded_v1) IsInternal() bool { return false }

// EventLogEntry is the archive row shape for the data lake table.
type EventLogEntry struct {
	EventID     string    `json:"event_id" db:"event_id"`
	PublishedAt time.Time `json:"published_at" db:"published_at"`
	EventName   string    `json:"event_name" db:"event_name"`
	Payload     []byte    `json:"event_payload" db:"event_payload"`
}
