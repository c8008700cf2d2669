package event

import (
	"context"
	"fmt"

	"booking/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

func (h Handler) NotifyBookingCancelled(ctx context.Context, event *entities.BookingCanceled_v1) error {
	log.FromContext(ctx).Info("Sending booking cancelled notification")

	notification := entities.BookingCancelledNotification{
		IdempotencyKey: event.Header.IdempotencyKey,
		BookingID:      event.BookingID,
		UserID:         event.UserID,
		TicketID:       event.TicketID,
		RefundIssued:   event.RefundIssued,
	}

	err := h.notificationsService.SendBookingCancelled(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to send booking cancelled notification: %w", err)
	}

	return nil
}
