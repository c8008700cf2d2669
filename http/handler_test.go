package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booking/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventRepoStub struct {
	EventRepository
	byID func(ctx context.Context, eventID uuid.UUID) (entities.Event, error)
}

func (s eventRepoStub) ByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error) {
	return s.byID(ctx, eventID)
}

type bookingRepoStub struct {
	BookingRepository
	create func(ctx context.Context, booking entities.Booking) (entities.Booking, error)
	cancel func(ctx context.Context, bookingID, userID uuid.UUID) (entities.Booking, error)
}

func (s bookingRepoStub) Create(ctx context.Context, booking entities.Booking) (entities.Booking, error) {
	return s.create(ctx, booking)
}

func (s bookingRepoStub) Cancel(ctx context.Context, bookingID, userID uuid.UUID) (entities.Booking, error) {
	return s.cancel(ctx, bookingID, userID)
}

type paymentRepoStub struct {
	PaymentRepository
	settle func(ctx context.Context, bookingID, userID uuid.UUID, method string) (entities.Payment, error)
	byID   func(ctx context.Context, paymentID, userID uuid.UUID) (entities.Payment, error)
}

func (s paymentRepoStub) Settle(ctx context.Context, bookingID, userID uuid.UUID, method string) (entities.Payment, error) {
	return s.settle(ctx, bookingID, userID, method)
}

func (s paymentRepoStub) ByID(ctx context.Context, paymentID, userID uuid.UUID) (entities.Payment, error) {
	return s.byID(ctx, paymentID, userID)
}

type throttleStub struct {
	err error
}

func (s throttleStub) Touch(context.Context, uuid.UUID, uuid.UUID) error {
	return s.err
}

type routerStubs struct {
	events   eventRepoStub
	bookings bookingRepoStub
	payments paymentRepoStub
	throttle throttleStub
}

func newTestRouter(stubs routerStubs) http.Handler {
	return NewHttpRouter(
		stubs.events,
		nil,
		stubs.bookings,
		stubs.payments,
		nil,
		stubs.throttle,
		100,
	)
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body string, principal *entities.Principal) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if principal != nil {
		req.Header.Set("X-User-ID", principal.UserID.String())
		req.Header.Set("X-User-Role", string(principal.Role))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}

	return rec, resp
}

func customer() *entities.Principal {
	return &entities.Principal{UserID: uuid.New(), Role: entities.RoleCustomer}
}

func TestReserveTicket(t *testing.T) {
	ticketID := uuid.New()

	router := newTestRouter(routerStubs{
		bookings: bookingRepoStub{
			create: func(_ context.Context, booking entities.Booking) (entities.Booking, error) {
				booking.Status = entities.BookingStatusPending
				return booking, nil
			},
		},
	})

	rec, resp := doRequest(t, router, http.MethodPost, "/tickets/"+ticketID.String()+"/bookings", `{"quantity": 2}`, customer())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
}

func TestReserveTicketValidation(t *testing.T) {
	ticketID := uuid.New()
	router := newTestRouter(routerStubs{})

	for name, body := range map[string]string{
		"zero quantity":     `{"quantity": 0}`,
		"negative quantity": `{"quantity": -5}`,
		"over the cap":      `{"quantity": 101}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec, resp := doRequest(t, router, http.MethodPost, "/tickets/"+ticketID.String()+"/bookings", body, customer())
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.False(t, resp.Success)
		})
	}

	rec, _ := doRequest(t, router, http.MethodPost, "/tickets/not-a-uuid/bookings", `{"quantity": 1}`, customer())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReserveTicketThrottled(t *testing.T) {
	ticketID := uuid.New()

	router := newTestRouter(routerStubs{
		throttle: throttleStub{err: entities.ErrTooManyAttempts},
	})

	rec, resp := doRequest(t, router, http.MethodPost, "/tickets/"+ticketID.String()+"/bookings", `{"quantity": 1}`, customer())

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.False(t, resp.Success)
}

func TestReserveTicketBusinessRejections(t *testing.T) {
	ticketID := uuid.New()

	for _, tc := range []struct {
		name     string
		err      error
		wantCode int
	}{
		{"insufficient tickets", entities.ErrInsufficientTickets, http.StatusBadRequest},
		{"duplicate booking", entities.ErrDuplicateBooking, http.StatusBadRequest},
		{"unknown ticket", entities.ErrTicketNotFound, http.StatusNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(routerStubs{
				bookings: bookingRepoStub{
					create: func(context.Context, entities.Booking) (entities.Booking, error) {
						return entities.Booking{}, tc.err
					},
				},
			})

			rec, resp := doRequest(t, router, http.MethodPost, "/tickets/"+ticketID.String()+"/bookings", `{"quantity": 1}`, customer())
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestCancelBookingOutcomes(t *testing.T) {
	bookingID := uuid.New()

	for _, tc := range []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not owner", entities.ErrNotOwner, http.StatusForbidden},
		{"already cancelled", entities.ErrAlreadyCancelled, http.StatusBadRequest},
		{"not found", entities.ErrBookingNotFound, http.StatusNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(routerStubs{
				bookings: bookingRepoStub{
					cancel: func(context.Context, uuid.UUID, uuid.UUID) (entities.Booking, error) {
						return entities.Booking{}, tc.err
					},
				},
			})

			rec, resp := doRequest(t, router, http.MethodPut, "/bookings/"+bookingID.String()+"/cancel", "", customer())
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.False(t, resp.Success)
		})
	}

	router := newTestRouter(routerStubs{
		bookings: bookingRepoStub{
			cancel: func(_ context.Context, id, _ uuid.UUID) (entities.Booking, error) {
				return entities.Booking{BookingID: id, Status: entities.BookingStatusCancelled}, nil
			},
		},
	})
	rec, resp := doRequest(t, router, http.MethodPut, "/bookings/"+bookingID.String()+"/cancel", "", customer())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestPayBooking(t *testing.T) {
	bookingID := uuid.New()
	amount := entities.NewMoney(decimal.RequireFromString("50.00"), "USD")

	successRouter := newTestRouter(routerStubs{
		payments: paymentRepoStub{
			settle: func(_ context.Context, id, _ uuid.UUID, method string) (entities.Payment, error) {
				return entities.Payment{
					PaymentID: uuid.New(),
					BookingID: id,
					Amount:    amount,
					Method:    method,
					Status:    entities.PaymentStatusSuccess,
				}, nil
			},
		},
	})

	rec, resp := doRequest(t, successRouter, http.MethodPost, "/bookings/"+bookingID.String()+"/payment", `{"payment_method": "card"}`, customer())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	declinedRouter := newTestRouter(routerStubs{
		payments: paymentRepoStub{
			settle: func(_ context.Context, id, _ uuid.UUID, method string) (entities.Payment, error) {
				return entities.Payment{
					PaymentID: uuid.New(),
					BookingID: id,
					Amount:    amount,
					Method:    method,
					Status:    entities.PaymentStatusFailed,
				}, nil
			},
		},
	})

	rec, resp = doRequest(t, declinedRouter, http.MethodPost, "/bookings/"+bookingID.String()+"/payment", `{"payment_method": "card"}`, customer())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)

	rec, _ = doRequest(t, successRouter, http.MethodPost, "/bookings/"+bookingID.String()+"/payment", `{"payment_method": "iou"}`, customer())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPayBookingRejections(t *testing.T) {
	bookingID := uuid.New()

	for _, tc := range []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not pending", entities.ErrNotPending, http.StatusBadRequest},
		{"already processed", entities.ErrAlreadyProcessed, http.StatusBadRequest},
		{"not owner", entities.ErrNotOwner, http.StatusForbidden},
		{"not found", entities.ErrBookingNotFound, http.StatusNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(routerStubs{
				payments: paymentRepoStub{
					settle: func(context.Context, uuid.UUID, uuid.UUID, string) (entities.Payment, error) {
						return entities.Payment{}, tc.err
					},
				},
			})

			rec, resp := doRequest(t, router, http.MethodPost, "/bookings/"+bookingID.String()+"/payment", `{"payment_method": "card"}`, customer())
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestGetPayment(t *testing.T) {
	paymentID := uuid.New()

	router := newTestRouter(routerStubs{
		payments: paymentRepoStub{
			byID: func(context.Context, uuid.UUID, uuid.UUID) (entities.Payment, error) {
				return entities.Payment{}, entities.ErrPaymentNotFound
			},
		},
	})

	rec, resp := doRequest(t, router, http.MethodGet, "/payments/"+paymentID.String(), "", customer())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestAuthBoundary(t *testing.T) {
	router := newTestRouter(routerStubs{})

	// no identity headers
	rec, _ := doRequest(t, router, http.MethodGet, "/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// customers cannot manage events
	rec, _ = doRequest(t, router, http.MethodPost, "/events", `{"title":"x","venue":"y","start_time":"2030-01-01T00:00:00Z"}`, customer())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// ops surface is admin-only
	rec, _ = doRequest(t, router, http.MethodGet, "/ops/bookings", "", customer())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetricsExposeRequestDurations(t *testing.T) {
	router := newTestRouter(routerStubs{})

	rec, _ := doRequest(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "booking_request_duration_seconds")
}
