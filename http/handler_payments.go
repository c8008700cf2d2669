package http

import (
	"net/http"

	"booking/monitoring"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type payBookingRequest struct {
	Method string `json:"payment_method"`
}

func validPaymentMethod(method string) bool {
	switch method {
	case "card", "paypal", "bank_transfer":
		return true
	}
	return false
}

func (h *Handler) PostBookingPayment(c echo.Context) error {
	principal := principalFrom(c)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid booking id")
	}

	var req payBookingRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	if !validPaymentMethod(req.Method) {
		return respondError(c, http.StatusUnprocessableEntity, "unsupported payment method")
	}

	payment, err := h.paymentRepo.Settle(c.Request().Context(), bookingID, principal.UserID, req.Method)
	if err != nil {
		monitoring.TrackSettlement("rejected")
		return respondRepositoryError(c, err)
	}

	if !payment.IsSuccess() {
		monitoring.TrackSettlement("declined")
		return c.JSON(http.StatusBadRequest, envelope{
			Success: false,
			Message: "payment was declined",
			Data:    payment,
		})
	}

	monitoring.TrackSettlement("success")
	return respondOK(c, http.StatusOK, "payment successful", payment)
}

func (h *Handler) GetPaymentByID(c echo.Context) error {
	principal := principalFrom(c)

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid payment id")
	}

	payment, err := h.paymentRepo.ByID(c.Request().Context(), paymentID, principal.UserID)
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "payment", payment)
}
