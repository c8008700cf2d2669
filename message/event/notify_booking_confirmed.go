package event

import (
	"context"
	"fmt"

	"booking/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

func (h Handler) NotifyBookingConfirmed(ctx context.Context, event *entities.BookingConfirmed_v1) error {
	log.FromContext(ctx).Info("Sending booking confirmed notification")

	notification := entities.BookingConfirmedNotification{
		IdempotencyKey: event.Header.IdempotencyKey,
		BookingID:      event.BookingID,
		UserID:         event.UserID,
		TicketID:       event.TicketID,
		Quantity:       event.Quantity,
		Amount:         event.Amount,
	}

	err := h.notificationsService.SendBookingConfirmed(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to send booking confirmed notification: %w", err)
	}

	return nil
}
