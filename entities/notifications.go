package entities

import "github.com/google/uuid"

type BookingConfirmedNotification struct {
	IdempotencyKey string    `json:"idempotency_key"`
	BookingID      uuid.UUID `json:"booking_id"`
	UserID         uuid.UUID `json:"user_id"`
	TicketID       uuid.UUID `json:"ticket_id"`
	Quantity       int       `json:"quantity"`
	Amount         Money     `json:"amount"`
}

type BookingCancelledNotification struct {
	IdempotencyKey string    `json:"idempotency_key"`
	BookingID      uuid.UUID `json:"booking_id"`
	UserID         uuid.UUID `json:"user_id"`
	TicketID       uuid.UUID `json:"ticket_id"`
	RefundIssued   bool      `json:"refund_issued"`
}
