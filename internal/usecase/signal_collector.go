package usecase

import (
	"context"

	"WealthSim/internal/domain/models"
	drepo "WealthSim/internal/domain/repository"
	"WealthSim/internal/service/marketdata"
)

// SignalCollector consumes the market feed, keeps the snapshot store
// fresh and forwards signals to the history processor.
type SignalCollector struct {
	feed    drepo.SignalFeed
	store   *marketdata.SnapshotStore
	proc    *SignalProcessor
	metrics drepo.Metrics
}

// NewSignalCollector creates a new SignalCollector instance.
func NewSignalCollector(feed drepo.SignalFeed, store *marketdata.SnapshotStore, proc *SignalProcessor, metrics drepo.Metrics) *SignalCollector {
	return &SignalCollector{feed: feed, store: store, proc: proc, metrics: metrics}
}

// IsConnected returns true if the market feed is connected.
func (c *SignalCollector) IsConnected() bool {
	return c.feed.IsConnected()
}

func (c *SignalCollector) Start(ctx context.Context) error {
	if err := c.feed.Connect(ctx); err != nil {
		return err
	}
	if err := c.feed.Subscribe(ctx); err != nil {
		return err
	}
	c.proc.Start(ctx)
	sigCh, errCh := c.feed.Read(ctx)
	go c.consume(ctx, sigCh, errCh)
	return nil
}

func (c *SignalCollector) consume(ctx context.Context, sigCh <-chan *models.MarketSignal, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("feed")
				_ = c.feed.Reconnect(ctx)
			}
		case sig := <-sigCh:
			if sig == nil {
				continue
			}
			c.store.Put(*sig)
			c.metrics.RecordSignalLevel(sig.Symbol, sig.Price)
			if err := c.proc.Enqueue(ctx, sig); err != nil {
				c.metrics.RecordError("history")
			}
		}
	}
}

// Processor returns the underlying SignalProcessor for lifecycle management.
func (c *SignalCollector) Processor() *SignalProcessor { return c.proc }

// Shutdown closes the feed.
func (c *SignalCollector) Shutdown(_ context.Context) error {
	return c.feed.Close()
}
