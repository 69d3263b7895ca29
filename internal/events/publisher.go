package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Config selects the transport
type Config struct {
	KafkaBrokers []string
	Logger       *slog.Logger
}

// Bus is a watermill publisher plus, for the in-process transport, its subscriber.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
	transport  string
}

// NewBus creates the Kafka bus when brokers are set, the gochannel bus otherwise.
func NewBus(cfg Config) (*Bus, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	wmLogger := watermill.NewSlogLogger(logger)

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:   cfg.KafkaBrokers,
			Marshaler: kafka.DefaultMarshaler{},
		}, wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
		}
		return &Bus{publisher: publisher, logger: logger, transport: "kafka"}, nil
	}

	channel := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
	return &Bus{publisher: channel, subscriber: channel, logger: logger, transport: "gochannel"}, nil
}

// Transport names the active transport
func (b *Bus) Transport() string {
	return b.transport
}

// Subscriber returns the in-process subscriber, or nil on Kafka.
func (b *Bus) Subscriber() message.Subscriber {
	return b.subscriber
}

// Publish marshals event into a watermill message
func (b *Bus) Publish(ctx context.Context, topic string, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("type", event.Type)
	msg.Metadata.Set("source", event.Source)
	msg.SetContext(ctx)

	if err := b.publisher.Publish(topic, msg); err != nil {
		b.logger.ErrorContext(ctx, "Failed to publish event",
			"topic", topic,
			"type", event.Type,
			"transport", b.transport,
			"error", err)
		return err
	}
	return nil
}

func (b *Bus) Close() error {
	return b.publisher.Close()
}
