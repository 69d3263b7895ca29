package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/SAP-F-2025/trainee-dashboard/internal/notify"
)

// NotificationSink publishes every page notification on topic.
type NotificationSink struct {
	publisher EventPublisher
	topic     string
}

func NewNotificationSink(publisher EventPublisher, topic string) *NotificationSink {
	return &NotificationSink{publisher: publisher, topic: topic}
}

func (s *NotificationSink) Publish(ctx context.Context, e notify.Event) error {
	event, err := NewEvent(TypeNotification, e)
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, s.topic, event)
}

// LogNotifications drains the in-process topic into the log until ctx is done.
func LogNotifications(ctx context.Context, bus *Bus, topic string, logger *slog.Logger) error {
	sub := bus.Subscriber()
	if sub == nil {
		return nil
	}
	messages, err := sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var event Event
			var n notify.Event
			if json.Unmarshal(msg.Payload, &event) == nil && event.Decode(&n) == nil {
				logger.Info("Notification",
					"section", n.Section,
					"user_id", n.UserID,
					"severity", n.Severity,
					"message", n.Message)
			}
			msg.Ack()
		}
	}()
	return nil
}
