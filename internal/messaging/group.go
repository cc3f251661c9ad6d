package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Runnable is anything with a start/stop lifecycle.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// TopicConsumer is a Runnable bound to one topic, such as a *Consumer.
type TopicConsumer interface {
	Runnable
	Topic() string
}

// ErrDuplicateTopic is returned by Add when the topic already has a consumer. Two consumers
// in one group would split a topic's messages between them.
var ErrDuplicateTopic = errors.New("topic already has a consumer")

// ConsumerGroup runs one consumer per topic over a shared subscriber and owns that
// subscriber's lifetime.
type ConsumerGroup struct {
	consumers  []TopicConsumer
	topics     map[string]struct{}
	subscriber message.Subscriber
	logger     *zap.Logger
}

func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		topics:     make(map[string]struct{}),
		subscriber: subscriber,
		logger:     logger,
	}
}

func (g *ConsumerGroup) Add(consumer TopicConsumer) error {
	topic := consumer.Topic()
	if _, ok := g.topics[topic]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTopic, topic)
	}

	g.topics[topic] = struct{}{}
	g.consumers = append(g.consumers, consumer)

	return nil
}

// Topics lists the subscribed topics in the order they were added.
func (g *ConsumerGroup) Topics() []string {
	topics := make([]string, len(g.consumers))
	for i, c := range g.consumers {
		topics[i] = c.Topic()
	}

	return topics
}

// Start starts consumers in order. If one fails, the ones already running are stopped in
// reverse order.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, consumer := range g.consumers {
		if err := consumer.Start(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = g.consumers[j].Shutdown()
			}

			return fmt.Errorf("start consumer for %s: %w", consumer.Topic(), err)
		}
	}

	g.logger.Info("consumers started", zap.Strings("topics", g.Topics()))

	return nil
}

// Shutdown stops every consumer in reverse order, then closes the subscriber. All errors
// are reported.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("stopping consumers", zap.Strings("topics", g.Topics()))

	var errs []error

	for i := len(g.consumers) - 1; i >= 0; i-- {
		if err := g.consumers[i].Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("stop consumer for %s: %w", g.consumers[i].Topic(), err))
		}
	}

	if err := g.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close subscriber: %w", err))
	}

	return errors.Join(errs...)
}
