package messaging

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// ErrPermanent marks handler errors that redelivery cannot fix. Such messages are acked and
// dropped instead of nacked.
var ErrPermanent = errors.New("permanent failure")

// Handler processes one decoded event.
type Handler[T any] func(ctx context.Context, event *T) error

// Consumer subscribes to a topic and feeds decoded events to a Handler.
//
// Handler errors nack the message so the transport redelivers it. Payloads that do not
// decode, and handler errors wrapping ErrPermanent, are acked and dropped since redelivery
// cannot fix them.
type Consumer[T any] struct {
	subscriber message.Subscriber
	topic      string
	handler    Handler[T]
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewConsumer[T any](
	subscriber message.Subscriber,
	topic string,
	handler Handler[T],
	logger *zap.Logger,
) *Consumer[T] {
	return &Consumer[T]{
		subscriber: subscriber,
		topic:      topic,
		handler:    handler,
		logger:     logger.With(zap.String("topic", topic)),
		done:       make(chan struct{}),
	}
}

func (c *Consumer[T]) Topic() string {
	return c.topic
}

// Start subscribes and processes messages in the background until Shutdown or ctx ends.
func (c *Consumer[T]) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		c.cancel()
		close(c.done)

		return err
	}

	go c.run(ctx, msgs)

	return nil
}

func (c *Consumer[T]) run(ctx context.Context, msgs <-chan *message.Message) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			c.process(ctx, msg)
		}
	}
}

func (c *Consumer[T]) process(ctx context.Context, msg *message.Message) {
	var event T
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Error("dropping undecodable message",
			zap.String("messageId", msg.UUID),
			zap.Error(err),
		)
		msg.Ack()

		return
	}

	if err := c.handler(ctx, &event); err != nil {
		if errors.Is(err, ErrPermanent) {
			c.logger.Error("dropping rejected message",
				zap.String("messageId", msg.UUID),
				zap.Error(err),
			)
			msg.Ack()

			return
		}

		c.logger.Error("event handler failed",
			zap.String("messageId", msg.UUID),
			zap.Error(err),
		)
		msg.Nack()

		return
	}

	msg.Ack()

	c.logger.Debug("event processed", zap.String("messageId", msg.UUID))
}

// Shutdown stops processing and waits for the in-flight message.
func (c *Consumer[T]) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	<-c.done

	return nil
}
