package services

import "context"

// EventPublisher emits domain events to the message broker. Publishing is
// best-effort from the caller's point of view: services log failures but do
// not roll back the write that triggered the event.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}
