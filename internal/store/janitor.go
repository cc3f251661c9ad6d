package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger removes expired entries from a backend without native expiry.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Janitor calls a Purger on a fixed interval until shut down.
type Janitor struct {
	purger   Purger
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewJanitor(purger Purger, interval time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		purger:   purger,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

func (j *Janitor) Start(ctx context.Context) error {
	ctx, j.cancel = context.WithCancel(ctx)

	go j.run(ctx)

	return nil
}

func (j *Janitor) run(ctx context.Context) {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := j.purger.PurgeExpired(ctx)
			if err != nil {
				j.logger.Warn("purge of expired entries failed", zap.Error(err))

				continue
			}

			if n > 0 {
				j.logger.Debug("purged expired entries", zap.Int64("count", n))
			}
		}
	}
}

func (j *Janitor) Shutdown() error {
	if j.cancel == nil {
		return nil
	}

	j.cancel()
	<-j.done

	return nil
}
