package api

import (
	"context"
	"sync"

	"booking/entities"
)

type NotificationsMock struct {
	mock sync.Mutex

	BookingConfirmed []entities.BookingConfirmedNotification
	BookingCancelled []entities.BookingCancelledNotification
}

func (c *NotificationsMock) SendBookingConfirmed(ctx context.Context, notification entities.BookingConfirmedNotification) error {
	c.mock.Lock()
	defer c.mock.Unlock()

	c.BookingConfirmed = append(c.BookingConfirmed, notification)
	return nil
}

func (c *NotificationsMock) SendBookingCancelled(ctx context.Context, notification entities.BookingCancelledNotification) error {
	c.mock.Lock()
	defer c.mock.Unlock()

	c.BookingCancelled = append(c.BookingCancelled, notification)
	return nil
}

func (c *NotificationsMock) ConfirmedNotifications() []entities.BookingConfirmedNotification {
	c.mock.Lock()
	defer c.mock.Unlock()

	return append([]entities.BookingConfirmedNotification(nil), c.BookingConfirmed...)
}

func (c *NotificationsMock) CancelledNotifications() []entities.BookingCancelledNotification {
	c.mock.Lock()
	defer c.mock.Unlock()

	return append([]entities.BookingCancelledNotification(nil), c.BookingCancelled...)
}
