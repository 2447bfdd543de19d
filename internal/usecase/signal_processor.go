package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"WealthSim/internal/domain/models"
	drepo "WealthSim/internal/domain/repository"
)

// SignalProcessor batches market signals and routes them to the
// configured history backend.
type SignalProcessor struct {
	pub     drepo.SignalPublisher
	store   drepo.SignalStore
	metrics drepo.Metrics
	backend string
	batchSz int
	batchTO time.Duration

	mu  sync.Mutex
	buf []*models.MarketSignal
}

// NewSignalProcessor creates a new SignalProcessor instance.
func NewSignalProcessor(
	pub drepo.SignalPublisher,
	store drepo.SignalStore,
	metrics drepo.Metrics,
	backend string,
	batchSz int,
	batchTO time.Duration,
) *SignalProcessor {
	if batchSz <= 0 {
		batchSz = 100
	}
	if batchTO <= 0 {
		batchTO = 5 * time.Second
	}
	return &SignalProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
		batchSz: batchSz,
		batchTO: batchTO,
	}
}

// Enabled reports whether signals are persisted at all.
func (p *SignalProcessor) Enabled() bool { return p.backend != "none" && p.backend != "" }

// Enqueue buffers a signal, flushing when the batch is full.
func (p *SignalProcessor) Enqueue(ctx context.Context, sig *models.MarketSignal) error {
	if !p.Enabled() || sig == nil {
		return nil
	}

	p.mu.Lock()
	p.buf = append(p.buf, sig)
	full := len(p.buf) >= p.batchSz
	p.mu.Unlock()

	if full {
		return p.Flush(ctx)
	}
	return nil
}

// Flush sends whatever is buffered to the backend.
func (p *SignalProcessor) Flush(ctx context.Context) error {
	p.mu.Lock()
	batch := p.buf
	p.buf = nil
	p.mu.Unlock()

	return p.ProcessBatch(ctx, batch)
}

// Start runs the periodic flush loop until ctx is cancelled.
func (p *SignalProcessor) Start(ctx context.Context) {
	if !p.Enabled() {
		return
	}
	go func() {
		ticker := time.NewTicker(p.batchTO)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.Flush(ctx); err != nil {
					p.metrics.RecordError("flush")
				}
			}
		}
	}()
}

// Process routes a single signal to the configured backend.
func (p *SignalProcessor) Process(ctx context.Context, sig *models.MarketSignal) error {
	if sig == nil {
		return fmt.Errorf("signal is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, sig)
	case "clickhouse":
		err = p.store.Store(ctx, sig)
	case "none", "":
		return nil
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process signal: %w", err)
	}

	p.metrics.RecordHistorySent(p.backend, sig.Symbol)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

// ProcessBatch routes multiple signals in one backend call.
func (p *SignalProcessor) ProcessBatch(ctx context.Context, sigs []*models.MarketSignal) error {
	if len(sigs) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, sigs)
	case "clickhouse":
		err = p.store.StoreBatch(ctx, sigs)
	case "none", "":
		return nil
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, sig := range sigs {
		p.metrics.RecordHistorySent(p.backend, sig.Symbol)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())
	return nil
}

// Close flushes and closes underlying resources if available.
func (p *SignalProcessor) Close() {
	if p.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.Flush(ctx)
	}
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
