package http

import (
	"net/http"
	"time"

	libHttp "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"booking/entities"
	"booking/monitoring"
)

func NewHttpRouter(
	eventRepo EventRepository,
	ticketRepo TicketRepository,
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	opsBookingRepo OpsBookingRepository,
	attempts AttemptThrottle,
	maxTicketsPerBooking int,
) *echo.Echo {
	e := libHttp.NewEcho()
	e.Use(otelecho.Middleware("booking"))
	e.Use(durationMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := Handler{
		eventRepo:      eventRepo,
		ticketRepo:     ticketRepo,
		bookingRepo:    bookingRepo,
		paymentRepo:    paymentRepo,
		opsBookingRepo: opsBookingRepo,
		attempts:       attempts,

		maxTicketsPerBooking: maxTicketsPerBooking,
	}

	e.GET("/events", handler.GetEvents)
	e.GET("/events/:id", handler.GetEventByID)
	e.GET("/events/:id/tickets", handler.GetEventTickets)

	authed := e.Group("", PrincipalMiddleware)

	organizers := authed.Group("", RequireRole(entities.RoleOrganizer, entities.RoleAdmin))
	organizers.POST("/events", handler.PostEvents)
	organizers.PUT("/events/:id", handler.PutEvent)
	organizers.DELETE("/events/:id", handler.DeleteEvent)
	organizers.POST("/events/:event_id/tickets", handler.PostTickets)
	organizers.PUT("/tickets/:id", handler.PutTicket)
	organizers.DELETE("/tickets/:id", handler.DeleteTicket)

	customers := authed.Group("", RequireRole(entities.RoleCustomer, entities.RoleAdmin))
	customers.POST("/tickets/:id/bookings", handler.PostBookings)
	customers.GET("/bookings", handler.GetBookings)
	customers.PUT("/bookings/:id/cancel", handler.PutBookingCancel)
	customers.POST("/bookings/:id/payment", handler.PostBookingPayment)
	customers.GET("/payments/:id", handler.GetPaymentByID)

	ops := authed.Group("", RequireRole(entities.RoleAdmin))
	ops.GET("/ops/bookings", handler.GetOpsBookings)
	ops.GET("/ops/bookings/:id", handler.GetOpsBookingByID)

	return e
}

// durationMiddleware observes per-route request durations, labeled with the
// route pattern rather than the raw path so ids do not explode cardinality.
func durationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		monitoring.TrackDuration(c.Request().Method+" "+c.Path(), time.Since(start))
		return err
	}
}
