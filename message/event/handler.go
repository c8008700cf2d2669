package event

import (
	"context"

	"booking/entities"
)

type NotificationsAPI interface {
	SendBookingConfirmed(ctx context.Context, notification entities.BookingConfirmedNotification) error
	SendBookingCancelled(ctx context.Context, notification entities.BookingCancelledNotification) error
}

type EventArchive interface {
	Append(ctx context.Context, entry entities.EventLogEntry) error
}

type Handler struct {
	notificationsService NotificationsAPI
	eventArchive         EventArchive
}

func NewHandler(notificationsService NotificationsAPI, eventArchive EventArchive) Handler {
	if notificationsService == nil {
		panic("missing notificationsService")
	}
	if eventArchive == nil {
		panic("missing eventArchive")
	}
	return Handler{
		notificationsService: notificationsService,
		eventArchive:         eventArchive,
	}
}
