package entities

import "github.com/google/uuid"

type Ticket struct {
	TicketID uuid.UUID `json:"ticket_id" db:"ticket_id"`
	EventID  uuid.UUID `json:"event_id" db:"event_id"`
	Name     string    `json:"name" db:"name"`
	Price    Money     `json:"price" db:"price"`
	Quantity int       `json:"quantity" db:"quantity"`
}

type TicketCreateResponse struct {
	TicketID uuid.UUID `json:"ticket_id"`
}

// AvailableCapacity is what is left after subtracting quantity committed to
// pending and confirmed bookings. Never negative.
func AvailableCapacity(ticketQuantity, bookedQuantity int) int {
	if available := ticketQuantity - bookedQuantity; available > 0 {
		return available
	}
	return 0
}

// IsAvailable reports whether the requested quantity fits into what is left.
// bookedQuantity must come from the same transaction that decides admission.
func (t Ticket) IsAvailable(requestedQuantity, bookedQuantity int) bool {
	return requestedQuantity >= 1 && requestedQuantity <= AvailableCapacity(t.Quantity, bookedQuantity)
}
