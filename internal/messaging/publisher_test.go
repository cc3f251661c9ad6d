package messaging_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shorty/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	messages   []*message.Message
	topic      string
	publishErr error
	closeErr   error
}

func (m *mockPublisher) Publish(topic string, msgs ...*message.Message) error {
	if m.publishErr != nil {
		return m.publishErr
	}

	m.topic = topic
	m.messages = append(m.messages, msgs...)

	return nil
}

func (m *mockPublisher) Close() error {
	return m.closeErr
}

type linkEvent struct {
	Hash    string `json:"hash"`
	LongURL string `json:"longUrl"`
}

func TestNewPublishFunc(t *testing.T) {
	t.Run("publishes json payload on topic", func(t *testing.T) {
		mock := &mockPublisher{}
		publish := messaging.NewPublishFunc[linkEvent](mock, "link.created")

		err := publish(context.Background(), &linkEvent{Hash: "aB3", LongURL: "https://example.com"})

		require.NoError(t, err)
		assert.Equal(t, "link.created", mock.topic)
		require.Len(t, mock.messages, 1)
		assert.JSONEq(t, `{"hash":"aB3","longUrl":"https://example.com"}`, string(mock.messages[0].Payload))
		assert.NotEmpty(t, mock.messages[0].UUID)

		_, err = time.Parse(time.RFC3339, mock.messages[0].Metadata.Get(messaging.MetadataPublishedAt))
		require.NoError(t, err)
	})

	t.Run("wraps transport error", func(t *testing.T) {
		transportErr := errors.New("stream unavailable")
		mock := &mockPublisher{publishErr: transportErr}
		publish := messaging.NewPublishFunc[linkEvent](mock, "link.created")

		err := publish(context.Background(), &linkEvent{Hash: "x"})

		require.ErrorIs(t, err, transportErr)
		assert.Contains(t, err.Error(), "link.created")
	})
}

func TestDiscard(t *testing.T) {
	publish := messaging.Discard[linkEvent]()

	assert.NoError(t, publish(context.Background(), &linkEvent{Hash: "x"}))
}

func TestPublisherGroup(t *testing.T) {
	t.Run("exposes underlying publisher", func(t *testing.T) {
		mock := &mockPublisher{}
		group := messaging.NewPublisherGroup(mock)

		assert.Equal(t, mock, group.Publisher())
	})

	t.Run("shutdown closes publisher", func(t *testing.T) {
		group := messaging.NewPublisherGroup(&mockPublisher{})

		assert.NoError(t, group.Shutdown())
	})

	t.Run("shutdown returns close error", func(t *testing.T) {
		group := messaging.NewPublisherGroup(&mockPublisher{closeErr: errors.New("close error")})

		assert.Error(t, group.Shutdown())
	})
}
