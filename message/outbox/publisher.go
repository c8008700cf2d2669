package outbox

import (
	"context"
	"fmt"

	observability "booking/trace"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	watermillSQL "github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
)

// NewPublisherForDb returns a publisher that stores messages in the outbox
// table within the given transaction; the forwarder moves them to Redis after
// commit.
func NewPublisherForDb(ctx context.Context, tx *sqlx.Tx) (message.Publisher, error) {
	var publisher message.Publisher

	logger := log.NewWatermill(log.FromContext(ctx))

	publisher, err := watermillSQL.NewPublisher(
		tx,
		watermillSQL.PublisherConfig{
			SchemaAdapter: watermillSQL.DefaultPostgreSQLSchema{},
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create outbox publisher: %w", err)
	}

	publisher = forwarder.NewPublisher(publisher, forwarder.PublisherConfig{
		ForwarderTopic: topic,
	})
	publisher = log.CorrelationPublisherDecorator{Publisher: publisher}
	publisher = observability.TracingPublisherDecorator{Publisher: publisher}

	return publisher, nil
}
