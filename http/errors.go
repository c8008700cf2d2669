package http

import (
	"errors"
	"net/http"

	"booking/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

// respondRepositoryError translates business rejections into the envelope
// with the matching status code. Anything unrecognized is an infrastructure
// failure: logged with context, surfaced as a generic 500.
func respondRepositoryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, entities.ErrTooManyAttempts):
		return respondError(c, http.StatusTooManyRequests, "too many booking attempts, try again later")
	case errors.Is(err, entities.ErrInsufficientTickets):
		return respondError(c, http.StatusBadRequest, "not enough tickets available")
	case errors.Is(err, entities.ErrDuplicateBooking):
		return respondError(c, http.StatusBadRequest, "you already have an active booking for this ticket")
	case errors.Is(err, entities.ErrAlreadyCancelled):
		return respondError(c, http.StatusBadRequest, "booking is already cancelled")
	case errors.Is(err, entities.ErrNotPending):
		return respondError(c, http.StatusBadRequest, "booking is not pending")
	case errors.Is(err, entities.ErrAlreadyProcessed):
		return respondError(c, http.StatusBadRequest, "payment already processed for this booking")
	case errors.Is(err, entities.ErrInvalidAmount):
		return respondError(c, http.StatusBadRequest, "payment amount is invalid")
	case errors.Is(err, entities.ErrQuantityCommitted):
		return respondError(c, http.StatusBadRequest, "quantity is below what is already booked")
	case errors.Is(err, entities.ErrTicketHasBookings):
		return respondError(c, http.StatusBadRequest, "ticket with bookings cannot be deleted")
	case errors.Is(err, entities.ErrEventHasTickets):
		return respondError(c, http.StatusBadRequest, "event with tickets cannot be deleted")
	case errors.Is(err, entities.ErrNotOwner):
		return respondError(c, http.StatusForbidden, "you do not have access to this resource")
	case errors.Is(err, entities.ErrEventNotFound):
		return respondError(c, http.StatusNotFound, "event not found")
	case errors.Is(err, entities.ErrTicketNotFound):
		return respondError(c, http.StatusNotFound, "ticket not found")
	case errors.Is(err, entities.ErrBookingNotFound):
		return respondError(c, http.StatusNotFound, "booking not found")
	case errors.Is(err, entities.ErrPaymentNotFound):
		return respondError(c, http.StatusNotFound, "payment not found")
	}

	log.FromContext(c.Request().Context()).WithError(err).Error("request failed")
	return respondError(c, http.StatusInternalServerError, "internal error")
}
