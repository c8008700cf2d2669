package service

import (
	"context"
	"net/http"

	"booking/config"
	"booking/db"
	bookingHttp "booking/http"
	"booking/message"
	"booking/message/event"
	"booking/message/outbox"
	"booking/payments"
	"booking/throttle"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	httpAddr        string
}

func New(
	cfg *config.Config,
	redisClient *redis.Client,
	conn *db.DB,
	gateway payments.Gateway,
	notificationsService event.NotificationsAPI,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher := message.NewRedisPublisher(redisClient, watermillLogger)

	eventRepo := db.NewEventRepository(conn)
	ticketRepo := db.NewTicketRepository(conn)
	bookingRepo := db.NewBookingRepository(conn, gateway)
	paymentRepo := db.NewPaymentRepository(conn, gateway)
	opsReadModel := db.NewOpsBookingReadModel(conn)
	eventLogRepo := db.NewEventLogRepository(conn)

	attempts := throttle.NewAttempts(redisClient, cfg.BookingCooldown)

	eventsHandler := event.NewHandler(notificationsService, eventLogRepo)
	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)

	pgSubscriber := outbox.SubscribeForPGMessages(conn.Conn, watermillLogger)
	watermillRouter := message.NewWatermillRouter(
		pgSubscriber,
		redisPublisher,
		eventProcessorConfig,
		eventsHandler,
		opsReadModel,
		watermillLogger,
	)

	echoRouter := bookingHttp.NewHttpRouter(
		eventRepo,
		ticketRepo,
		bookingRepo,
		paymentRepo,
		opsReadModel,
		attempts,
		cfg.MaxTicketsPerBooking,
	)

	return Service{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		httpAddr:        cfg.HTTPAddr,
	}
}

func (s Service) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// the HTTP server starts after the message router is ready, so the
		// service is never healthy while handlers are still attaching
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(s.httpAddr)
		if err != nil && err != http.ErrServerClosed {
			return err
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
