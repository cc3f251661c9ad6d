// Package messaging moves typed JSON events over a watermill transport.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// MetadataPublishedAt carries the RFC 3339 publish time of a message.
const MetadataPublishedAt = "published_at"

// Publish sends one typed event.
type Publish[T any] func(ctx context.Context, event *T) error

// NewPublishFunc binds a publisher and a topic into a typed Publish.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(ctx context.Context, event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", topic, err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.SetContext(ctx)
		msg.Metadata.Set(MetadataPublishedAt, time.Now().UTC().Format(time.RFC3339))

		if err = publisher.Publish(topic, msg); err != nil {
			return fmt.Errorf("publish %s event: %w", topic, err)
		}

		return nil
	}
}

// Discard returns a Publish that drops every event. It is used when events are disabled.
func Discard[T any]() Publish[T] {
	return func(context.Context, *T) error {
		return nil
	}
}

// PublisherGroup owns the transport publisher shared by every Publish func.
type PublisherGroup struct {
	publisher message.Publisher
}

func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher returns the transport publisher.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the transport publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
