package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (h *Handler) GetOpsBookings(c echo.Context) error {
	bookings, err := h.opsBookingRepo.GetAll(c.Request().Context())
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "ops bookings", bookings)
}

func (h *Handler) GetOpsBookingByID(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid booking id")
	}

	booking, err := h.opsBookingRepo.GetByID(c.Request().Context(), bookingID)
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "ops booking", booking)
}
