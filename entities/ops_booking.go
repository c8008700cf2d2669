package entities

import (
	"time"

	"github.com/google/uuid"
)

// OpsBooking is the operations read model for one booking, projected from
// domain events. It is eventually consistent with the bookings table.
type OpsBooking struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	TicketID  uuid.UUID `json:"ticket_id"`
	Quantity  int       `json:"quantity"`
	BookedAt  time.Time `json:"booked_at"`

	Status string `json:"status"`

	PaymentID     string `json:"payment_id,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
	AmountPaid    string `json:"amount_paid,omitempty"`
	Currency      string `json:"currency,omitempty"`

	CanceledAt  time.Time `json:"canceled_at,omitempty"`
	RefundedAt  time.Time `json:"refunded_at,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}
