package observability

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// TracingPublisherDecorator injects the current trace context into message
// metadata so consumers continue the same trace.
type TracingPublisherDecorator struct {
	message.Publisher
}

func (p TracingPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		otel.GetTextMapPropagator().Inject(
			messages[i].Context(),
			propagation.MapCarrier(messages[i].Metadata),
		)
	}
	return p.Publisher.Publish(topic, messages...)
}
