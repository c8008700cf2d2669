package entities

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether the booking still counts against ticket capacity.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	BookingID uuid.UUID     `json:"booking_id" db:"booking_id"`
	UserID    uuid.UUID     `json:"user_id" db:"user_id"`
	TicketID  uuid.UUID     `json:"ticket_id" db:"ticket_id"`
	Quantity  int           `json:"quantity" db:"quantity"`
	Status    BookingStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// BookingWithPayment is the listing shape for a customer's own bookings.
type BookingWithPayment struct {
	Booking
	PaymentID     *uuid.UUID     `json:"payment_id,omitempty" db:"payment_id"`
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty" db:"payment_status"`
}

func (b Booking) TotalAmount(price Money) Money {
	return price.Mul(b.Quantity)
}
