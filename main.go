package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"booking/api"
	"booking/config"
	"booking/db"
	"booking/message"
	"booking/payments"
	"booking/service"
	observability "booking/trace"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	traceProvider, err := observability.ConfigureTraceProvider(cfg.JaegerEndpoint)
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shut down trace provider")
		}
	}()

	conn, err := db.NewDBConn(cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	conn.MigrateSchema()

	redisClient := message.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()

	gateway := payments.NewSimulatedGateway(
		cfg.PaymentSuccessPercent,
		cfg.RefundSuccessPercent,
		decimal.NewFromInt(int64(cfg.PaymentMaxAmount)),
	)

	notificationsService := api.NewNotificationsServiceClient(http.DefaultClient, cfg.NotificationsAddr)

	logrus.Info("Server starting...")

	err = service.New(
		cfg,
		redisClient,
		&conn,
		gateway,
		notificationsService,
	).Run(ctx)
	if err != nil {
		panic(err)
	}
}
