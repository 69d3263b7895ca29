// Package events fans dashboard events out over watermill. The in-process gochannel
// transport is the default; Kafka is used when brokers are configured.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	Source  = "trainee-dashboard"
	Version = "1.0"

	TypeNotification = "dashboard.notification"
	TypeActivity     = "dashboard.activity"
)

// Event is the envelope of every published message
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// NewEvent wraps data in an envelope with a fresh id
func NewEvent(eventType string, data any) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    Source,
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}, nil
}

// Decode unmarshals the event payload into v
func (e *Event) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}

// EventPublisher publishes events to a topic
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}
