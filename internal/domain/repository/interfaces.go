package repository

import (
	"context"
	"time"

	"WealthSim/internal/domain/models"
)

type SignalFeed interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.MarketSignal, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type SignalPublisher interface {
	Publish(ctx context.Context, sig *models.MarketSignal) error
	PublishBatch(ctx context.Context, sigs []*models.MarketSignal) error
	Close() error
}

type SignalStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, sig *models.MarketSignal) error
	StoreBatch(ctx context.Context, sigs []*models.MarketSignal) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.MarketSignal, error)
	Health(ctx context.Context) error // ping
	Close() error
}

type Metrics interface {
	RecordValuation()
	RecordProjection(paths int)
	RecordHistorySent(backend, symbol string)
	RecordError(kind string)
	RecordSignalLevel(symbol string, level float64)
	RecordLatency(op string, seconds float64)
}
