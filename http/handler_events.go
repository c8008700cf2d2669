package http

import (
	"net/http"
	"time"

	"booking/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type eventRequest struct {
	Title     string    `json:"title"`
	Venue     string    `json:"venue"`
	StartTime time.Time `json:"start_time"`
}

func (h *Handler) GetEvents(c echo.Context) error {
	events, err := h.eventRepo.List(c.Request().Context())
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "events", events)
}

func (h *Handler) GetEventByID(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid event id")
	}

	event, err := h.eventRepo.ByID(c.Request().Context(), eventID)
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "event", event)
}

func (h *Handler) PostEvents(c echo.Context) error {
	principal := principalFrom(c)

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	if req.Title == "" || req.Venue == "" || req.StartTime.IsZero() {
		return respondError(c, http.StatusUnprocessableEntity, "title, venue and start_time are required")
	}

	resp, err := h.eventRepo.Create(c.Request().Context(), entities.Event{
		EventID:   uuid.New(),
		Title:     req.Title,
		Venue:     req.Venue,
		StartTime: req.StartTime,
		CreatedBy: principal.UserID,
	})
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusCreated, "event created", resp)
}

func (h *Handler) PutEvent(c echo.Context) error {
	principal := principalFrom(c)

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid event id")
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	if req.Title == "" || req.Venue == "" || req.StartTime.IsZero() {
		return respondError(c, http.StatusUnprocessableEntity, "title, venue and start_time are required")
	}

	ctx := c.Request().Context()

	event, err := h.eventRepo.ByID(ctx, eventID)
	if err != nil {
		return respondRepositoryError(c, err)
	}
	if principal.Role != entities.RoleAdmin && event.CreatedBy != principal.UserID {
		return respondRepositoryError(c, entities.ErrNotOwner)
	}

	event.Title = req.Title
	event.Venue = req.Venue
	event.StartTime = req.StartTime

	updated, err := h.eventRepo.Update(ctx, event)
	if err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "event updated", updated)
}

func (h *Handler) DeleteEvent(c echo.Context) error {
	principal := principalFrom(c)

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusUnprocessableEntity, "invalid event id")
	}

	ctx := c.Request().Context()

	event, err := h.eventRepo.ByID(ctx, eventID)
	if err != nil {
		return respondRepositoryError(c, err)
	}
	if principal.Role != entities.RoleAdmin && event.CreatedBy != principal.UserID {
		return respondRepositoryError(c, entities.ErrNotOwner)
	}

	if err := h.eventRepo.Delete(ctx, eventID); err != nil {
		return respondRepositoryError(c, err)
	}

	return respondOK(c, http.StatusOK, "event deleted", nil)
}
