package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/serroba/shorty/internal/messaging"
	"go.uber.org/zap"
)

// Sink persists audit entries.
type Sink interface {
	SaveLinkCreated(ctx context.Context, event *LinkCreated) error
}

// ErrIncompleteEvent is returned for events missing the hash or the long URL.
var ErrIncompleteEvent = errors.New("link created event is missing hash or long url")

// LogSink writes every entry to a zap logger.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) SaveLinkCreated(_ context.Context, event *LinkCreated) error {
	s.logger.Info("link created",
		zap.String("hash", event.Hash),
		zap.String("shortUrl", event.ShortURL),
		zap.String("longUrl", event.LongURL),
		zap.Bool("android", event.AndroidURL != ""),
		zap.Bool("ios", event.IOSURL != ""),
		zap.Int("ttlDays", event.TTLDays),
		zap.String("requestId", event.RequestID),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

// NewLinkCreatedHandler validates events and hands them to the sink. Incomplete events are
// permanent failures so the consumer drops them.
func NewLinkCreatedHandler(sink Sink) messaging.Handler[LinkCreated] {
	return func(ctx context.Context, event *LinkCreated) error {
		if event.Hash == "" || event.LongURL == "" {
			return fmt.Errorf("%w: %w", messaging.ErrPermanent, ErrIncompleteEvent)
		}

		return sink.SaveLinkCreated(ctx, event)
	}
}
