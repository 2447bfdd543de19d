package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"WealthSim/internal/domain/models"
	"WealthSim/internal/domain/repository"
	pkgkafka "WealthSim/pkg/kafka"
)

// ClickHouseSignalStore implements SignalStore for ClickHouse.
type ClickHouseSignalStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseSignalStore creates ClickHouse signal storage.
func NewClickHouseSignalStore(db *sql.DB, table string) repository.SignalStore {
	return &ClickHouseSignalStore{db: db, table: table}
}

func (s *ClickHouseSignalStore) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func signalArgs(sig *models.MarketSignal) []interface{} {
	return []interface{}{
		sig.ObservedAt,
		sig.Symbol,
		sig.Name,
		sig.Price,
		sig.Change,
		sig.ChangePercent,
		string(sig.Currency),
	}
}

func (s *ClickHouseSignalStore) Store(ctx context.Context, sig *models.MarketSignal) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, symbol, name, price, change, change_percent, currency) VALUES (?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q, signalArgs(sig)...)
	return err
}

func (s *ClickHouseSignalStore) StoreBatch(ctx context.Context, sigs []*models.MarketSignal) error {
	if len(sigs) == 0 {
		return nil
	}
	// Multi-row VALUES insert, chunked to keep statements bounded.
	const chunkSize = 2000
	for start := 0; start < len(sigs); start += chunkSize {
		end := start + chunkSize
		if end > len(sigs) {
			end = len(sigs)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*7)
		for _, sig := range sigs[start:end] {
			if sig == nil || sig.Symbol == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args, signalArgs(sig)...)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, symbol, name, price, change, change_percent, currency) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseSignalStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.MarketSignal, error) {
	q := fmt.Sprintf("SELECT ts, symbol, name, price, change, change_percent, currency FROM %s WHERE symbol = ? AND ts >= ? AND ts <= ? ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sigs []*models.MarketSignal
	for rows.Next() {
		var sig models.MarketSignal
		var currency string
		if err := rows.Scan(&sig.ObservedAt, &sig.Symbol, &sig.Name, &sig.Price, &sig.Change, &sig.ChangePercent, &currency); err != nil {
			return nil, err
		}
		sig.Currency = models.Currency(currency)
		sigs = append(sigs, &sig)
	}
	return sigs, rows.Err()
}

func (s *ClickHouseSignalStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSignalStore) Close() error {
	return nil // Managed by pkg
}

// KafkaSignalPublisher implements SignalPublisher for Kafka.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSignalPublisher creates a Kafka publisher.
func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) repository.SignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

func signalPayload(sig *models.MarketSignal) map[string]interface{} {
	return map[string]interface{}{
		"symbol":         sig.Symbol,
		"name":           sig.Name,
		"price":          sig.Price,
		"change":         sig.Change,
		"change_percent": sig.ChangePercent,
		"currency":       string(sig.Currency),
		"ts":             sig.ObservedAt.UnixMilli(),
	}
}

func (p *KafkaSignalPublisher) Publish(ctx context.Context, sig *models.MarketSignal) error {
	return p.producer.Publish(ctx, p.topic, []byte(sig.Symbol), signalPayload(sig))
}

func (p *KafkaSignalPublisher) PublishBatch(ctx context.Context, sigs []*models.MarketSignal) error {
	if len(sigs) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(sigs))
	for i, sig := range sigs {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(sig.Symbol),
			Value: signalPayload(sig),
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaSignalPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
