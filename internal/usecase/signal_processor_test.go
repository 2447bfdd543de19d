package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"WealthSim/internal/domain/models"
)

// fakePublisher counts published signals.
type fakePublisher struct {
	mu      sync.Mutex
	single  int
	batched int
	closed  bool
}

func (p *fakePublisher) Publish(_ context.Context, _ *models.MarketSignal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.single++
	return nil
}

func (p *fakePublisher) PublishBatch(_ context.Context, sigs []*models.MarketSignal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batched += len(sigs)
	return nil
}

func (p *fakePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func TestProcessorFlushesFullBatch(t *testing.T) {
	pub := &fakePublisher{}
	proc := NewSignalProcessor(pub, nil, newFakeMetrics(), "kafka", 3, time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := proc.Enqueue(ctx, &models.MarketSignal{Symbol: "SET"}); err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if pub.batched != 3 {
		t.Fatalf("batched = %d, want 3", pub.batched)
	}
}

func TestProcessorDisabledBackend(t *testing.T) {
	proc := NewSignalProcessor(nil, nil, newFakeMetrics(), "none", 1, time.Minute)
	if proc.Enabled() {
		t.Fatal("backend none should be disabled")
	}
	if err := proc.Enqueue(context.Background(), &models.MarketSignal{Symbol: "SET"}); err != nil {
		t.Fatalf("enqueue on disabled processor failed: %v", err)
	}
}

func TestProcessorCloseFlushesRemainder(t *testing.T) {
	pub := &fakePublisher{}
	proc := NewSignalProcessor(pub, nil, newFakeMetrics(), "kafka", 10, time.Minute)

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if err := proc.Enqueue(ctx, &models.MarketSignal{Symbol: "QQQ"}); err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}
	proc.Close()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if pub.batched != 4 {
		t.Fatalf("batched = %d, want 4", pub.batched)
	}
	if !pub.closed {
		t.Fatal("publisher not closed")
	}
}

func TestProcessorUnknownBackend(t *testing.T) {
	metrics := newFakeMetrics()
	proc := NewSignalProcessor(nil, nil, metrics, "postgres", 1, time.Minute)

	err := proc.Process(context.Background(), &models.MarketSignal{Symbol: "SET"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if metrics.errors["process"] != 1 {
		t.Fatalf("process error counter = %d, want 1", metrics.errors["process"])
	}
}
