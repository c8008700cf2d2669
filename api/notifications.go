package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"booking/entities"
)

type NotificationsServiceClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewNotificationsServiceClient(httpClient *http.Client, baseURL string) *NotificationsServiceClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NotificationsServiceClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

func (c NotificationsServiceClient) SendBookingConfirmed(ctx context.Context, notification entities.BookingConfirmedNotification) error {
	return c.post(ctx, "/notifications/booking-confirmed", notification.IdempotencyKey, notification)
}

func (c NotificationsServiceClient) SendBookingCancelled(ctx context.Context, notification entities.BookingCancelledNotification) error {
	return c.post(ctx, "/notifications/booking-cancelled", notification.IdempotencyKey, notification)
}

func (c NotificationsServiceClient) post(ctx context.Context, path string, idempotencyKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	return nil
}
