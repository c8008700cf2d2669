package event

import (
	"context"
	"encoding/json"
	"fmt"

	"booking/entities"
)

func (h Handler) ArchiveBookingMade(ctx context.Context, event *entities.BookingMade_v1) error {
	return h.archive(ctx, event.Header, "BookingMade_v1", event)
}

func (h Handler) ArchiveBookingConfirmed(ctx context.Context, event *entities.BookingConfirmed_v1) error {
	return h.archive(ctx, event.Header, "BookingConfirmed_v1", event)
}

func (h Handler) ArchiveBookingCanceled(ctx context.Context, event *entities.BookingCanceled_v1) error {
	return h.archive(ctx, event.Header, "BookingCanceled_v1", event)
}

func (h Handler) ArchivePaymentRefunded(ctx context.Context, event *entities.PaymentRefunded_v1) error {
	return h.archive(ctx, event.Header, "PaymentRefunded_v1", event)
}

func (h Handler) archive(ctx context.Context, header entities.EventHeader, eventName string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s for the event log: %w", eventName, err)
	}

	return h.eventArchive.Append(ctx, entities.EventLogEntry{
		EventID:     header.ID,
		PublishedAt: header.PublishedAt,
		EventName:   eventName,
		Payload:     payload,
	})
}
