package message

import (
	"booking/db"
	"booking/message/event"
	"booking/message/outbox"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

func NewWatermillRouter(
	pgSubscriber message.Subscriber,
	publisher message.Publisher,
	eventProcessorConfig cqrs.EventProcessorConfig,
	eventHandler event.Handler,
	opsReadModel db.OpsBookingReadModel,
	watermillLogger watermill.LoggerAdapter) *message.Router {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	useMiddlewares(router, watermillLogger)

	_, err = outbox.NewForwarder(pgSubscriber, publisher, watermillLogger, router)
	if err != nil {
		panic(err)
	}

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(router, eventProcessorConfig)
	if err != nil {
		panic(err)
	}

	err = eventProcessor.AddHandlers(
		cqrs.NewEventHandler(
			"NotifyBookingConfirmed",
			eventHandler.NotifyBookingConfirmed,
		),
		cqrs.NewEventHandler(
			"NotifyBookingCancelled",
			eventHandler.NotifyBookingCancelled,
		),
		cqrs.NewEventHandler(
			"OpsReadModelBookingMade",
			opsReadModel.OnBookingMade,
		),
		cqrs.NewEventHandler(
			"OpsReadModelBookingConfirmed",
			opsReadModel.OnBookingConfirmed,
		),
		cqrs.NewEventHandler(
			"OpsReadModelBookingCanceled",
			opsReadModel.OnBookingCanceled,
		),
		cqrs.NewEventHandler(
			"OpsReadModelPaymentRefunded",
			opsReadModel.OnPaymentRefunded,
		),
		cqrs.NewEventHandler(
			"ArchiveBookingMade",
			eventHandler.ArchiveBookingMade,
		),
		cqrs.NewEventHandler(
			"ArchiveBookingConfirmed",
			eventHandler.ArchiveBookingConfirmed,
		),
		cqrs.NewEventHandler(
			"ArchiveBookingCanceled",
			eventHandler.ArchiveBookingCanceled,
		),
		cqrs.NewEventHandler(
			"ArchivePaymentRefunded",
			eventHandler.ArchivePaymentRefunded,
		),
	)
	if err != nil {
		panic(err)
	}

	return router
}
