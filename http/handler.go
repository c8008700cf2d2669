package http

import (
	"context"

	"booking/entities"

	"github.com/google/uuid"
)

type Handler struct {
	eventRepo      EventRepository
	ticketRepo     TicketRepository
	bookingRepo    BookingRepository
	paymentRepo    PaymentRepository
	opsBookingRepo OpsBookingRepository
	attempts       AttemptThrottle

	maxTicketsPerBooking int
}

type EventRepository interface {
	Create(ctx context.Context, event entities.Event) (entities.EventCreateResponse, error)
	ByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error)
	List(ctx context.Context) ([]entities.Event, error)
	Update(ctx context.Context, event entities.Event) (entities.Event, error)
	Delete(ctx context.Context, eventID uuid.UUID) error
}

type TicketRepository interface {
	Create(ctx context.Context, ticket entities.Ticket) (entities.TicketCreateResponse, error)
	ByID(ctx context.Context, ticketID uuid.UUID) (entities.Ticket, error)
	ForEvent(ctx context.Context, eventID uuid.UUID) ([]entities.Ticket, error)
	Update(ctx context.Context, ticket entities.Ticket) (entities.Ticket, error)
	Delete(ctx context.Context, ticketID uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking entities.Booking) (entities.Booking, error)
	Cancel(ctx context.Context, bookingID, userID uuid.UUID) (entities.Booking, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entities.BookingWithPayment, error)
}

type PaymentRepository interface {
	Settle(ctx context.Context, bookingID, userID uuid.UUID, method string) (entities.Payment, error)
	ByID(ctx context.Context, paymentID, userID uuid.UUID) (entities.Payment, error)
}

type OpsBookingRepository interface {
	GetAll(ctx context.Context) ([]entities.OpsBooking, error)
	GetByID(ctx context.Context, bookingID uuid.UUID) (entities.OpsBooking, error)
}

type AttemptThrottle interface {
	Touch(ctx context.Context, userID, ticketID uuid.UUID) error
}
