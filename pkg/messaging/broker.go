package messaging

import (
	"context"
)

// Broker publishes entity-change notifications. Delivery is best effort;
// callers must never fail a request because a publish failed. Consumers
// live outside this service.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// Event is the payload published on entity mutations.
type Event struct {
	Type       string      `json:"type"`
	Collection string      `json:"collection"`
	Guid       string      `json:"guid"`
	Payload    interface{} `json:"payload,omitempty"`
}

// NopBroker is used when no broker is configured.
type NopBroker struct{}

func (NopBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (NopBroker) Close() error { return nil }
