package http

import (
	"net/http"

	"booking/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ticketRequest struct {
	Name     string         `json:"name"`
	Price    entities.Money `json:"price"`
	Quantity int            `json:"quantity"`
}

func (r ticketRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if !r.Price.IsPositive() {
		return "price must be positive"
	}
	if len(r.Price.Currency) != 3 {
		return "currency must be a 3-letter code"
	}
	if r.Quantity < 1 {
		return "quantity must be at least 1"
	}
	return ""
}

func (h *Handler) GetEventTickets(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid event id")
	}

	ctx := c.Request().Context()

	if _, err := h.eventRepo.ByID(ctx, eventID); err != nil {
		return respondRepositoryError(c, err)
	}

	tickets, err := h.ticketRepo.ForEvent(ctx, eventID)
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "tickets", tickets)
}

func (h *Handler) PostTickets(c echo.Context) error {
	principal := principalFrom(c)

	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid event id")
	}

	var req ticketRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return respondError(c, http.StatusUnprocessableEntity, msg)
	}

	ctx := c.Request().Context()

	event, err := h.eventRepo.ByID(ctx, eventID)
	if err != nil {
		return respondRepositoryError(c, err)
	}
	if principal.Role != entities.RoleAdmin && event.CreatedBy != principal.UserID {
		return respondRepositoryError(c, entities.ErrNotOwner)
	}

	resp, err := h.ticketRepo.Create(ctx, entities.Ticket{
		TicketID: uuid.New(),
		EventID:  eventID,
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusCreated, "ticket created", resp)
}

func (h *Handler) PutTicket(c echo.Context) error {
	principal := principalFrom(c)

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid ticket id")
	}

	var req ticketRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return respondError(c, http.StatusUnprocessableEntity, msg)
	}

	ctx := c.Request().Context()

	ticket, err := h.ticketRepo.ByID(ctx, ticketID)
	if err != nil {
		return respondRepositoryError(c, err)
	}
	if err := h.checkEventOwner(c, ticket.EventID, principal); err != nil {
		return respondRepositoryError(c, err)
	}

	ticket.Name = req.Name
	ticket.Price = req.Price
	ticket.Quantity = req.Quantity

	updated, err := h.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "ticket updated", updated)
}

func (h *Handler) DeleteTicket(c echo.Context) error {
	principal := principalFrom(c)

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid ticket id")
	}

	ctx := c.Request().Context()

	ticket, err := h.ticketRepo.ByID(ctx, ticketID)
	if err != nil {
		return respondRepositoryError(c, err)
	}
	if err := h.checkEventOwner(c, ticket.EventID, principal); err != nil {
		return respondRepositoryError(c, err)
	}

	if err := h.ticketRepo.Delete(ctx, ticketID); err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "ticket deleted", nil)
}

func (h *Handler) checkEventOwner(c echo.Context, eventID uuid.UUID, principal entities.Principal) error {
	if principal.Role == entities.RoleAdmin {
		return nil
	}

	event, err := h.eventRepo.ByID(c.Request().Context(), eventID)
	if err != nil {
		return err
	}
	if event.CreatedBy != principal.UserID {
		return entities.ErrNotOwner
	}
	return nil
}
