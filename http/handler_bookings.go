package http

import (
	"errors"
	"net/http"

	"booking/entities"
	"booking/monitoring"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type bookTicketRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) PostBookings(c echo.Context) error {
	principal := principalFrom(c)

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid ticket id")
	}

	var req bookTicketRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	if req.Quantity < 1 || req.Quantity > h.maxTicketsPerBooking {
		return respondError(c, http.StatusUnprocessableEntity, "quantity is out of range")
	}

	ctx := c.Request().Context()

	// The attempt marker is set before any other check runs, so repeated
	// attempts are throttled even when they would fail for other reasons.
	if err := h.attempts.Touch(ctx, principal.UserID, ticketID); err != nil {
		monitoring.TrackAdmission("throttled")
		return respondRepositoryError(c, err)
	}

	booking, err := h.bookingRepo.Create(ctx, entities.Booking{
		BookingID: uuid.New(),
		UserID:    principal.UserID,
		TicketID:  ticketID,
		Quantity:  req.Quantity,
		Status:    entities.BookingStatusPending,
	})
	if err != nil {
		monitoring.TrackAdmission(admissionOutcome(err))
		return respondRepositoryError(c, err)
	}

	monitoring.TrackAdmission("admitted")
	return respondOK(c, http.StatusCreated, "booking created", booking)
}

func admissionOutcome(err error) string {
	switch {
	case errors.Is(err, entities.ErrInsufficientTickets):
		return "insufficient_tickets"
	case errors.Is(err, entities.ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, entities.ErrTicketNotFound):
		return "not_found"
	}
	return "error"
}

func (h *Handler) GetBookings(c echo.Context) error {
	principal := principalFrom(c)

	bookings, err := h.bookingRepo.ListForUser(c.Request().Context(), principal.UserID)
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "bookings", bookings)
}

func (h *Handler) PutBookingCancel(c echo.Context) error {
	principal := principalFrom(c)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid booking id")
	}

	booking, err := h.bookingRepo.Cancel(c.Request().Context(), bookingID, principal.UserID)
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "booking cancelled", booking)
}
