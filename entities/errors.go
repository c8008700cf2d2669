package entities

import "errors"

// Business-rule rejections. Expected outcomes, returned typed and never
// logged as errors; the HTTP boundary maps them to status codes.
var (
	ErrInsufficientTickets = errors.New("insufficient tickets available")
	ErrDuplicateBooking    = errors.New("user already has an active booking for this ticket")
	ErrTooManyAttempts     = errors.New("too many booking attempts for this ticket")
	ErrNotOwner            = errors.New("resource does not belong to the requesting user")
	ErrAlreadyCancelled    = errors.New("booking is already cancelled")
	ErrNotPending          = errors.New("booking is not pending payment")
	ErrAlreadyProcessed    = errors.New("payment already processed for this booking")
	ErrInvalidAmount       = errors.New("payment amount out of range")
	ErrQuantityCommitted   = errors.New("ticket quantity cannot drop below committed bookings")
	ErrTicketHasBookings   = errors.New("ticket with bookings cannot be deleted")
	ErrEventHasTickets     = errors.New("event with tickets cannot be deleted")

	ErrEventNotFound   = errors.New("event not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPaymentNotFound = errors.New("payment not found")
)
