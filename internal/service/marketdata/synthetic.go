package marketdata

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"WealthSim/internal/domain/models"
	drepo "WealthSim/internal/domain/repository"
)

// symbolParams drives the random walk for one synthetic instrument.
type symbolParams struct {
	name     string
	currency models.Currency
	drift    float64 // annual
	vol      float64 // annual
	initial  float64
}

var syntheticDefaults = map[string]symbolParams{
	"SET":    {name: "SET Index", currency: models.CurrencyTHB, drift: 0.05, vol: 0.18, initial: 1400},
	"QQQ":    {name: "Nasdaq 100 ETF", currency: models.CurrencyUSD, drift: 0.12, vol: 0.28, initial: 450},
	"USDTHB": {name: "USD/THB", currency: models.CurrencyTHB, drift: 0.00, vol: 0.08, initial: 35},
	"GLD":    {name: "Gold ETF", currency: models.CurrencyUSD, drift: 0.06, vol: 0.15, initial: 180},
	"AGG":    {name: "US Aggregate Bond ETF", currency: models.CurrencyUSD, drift: 0.03, vol: 0.05, initial: 100},
}

// SyntheticFeed is a SignalFeed producing geometric-random-walk quotes
// for the configured symbols. Used when no live feed is available.
type SyntheticFeed struct {
	symbols   []string
	interval  time.Duration
	rng       *rand.Rand
	prices    map[string]float64
	connected bool
}

// NewSyntheticFeed creates a synthetic feed. seed 0 derives the seed
// from the clock.
func NewSyntheticFeed(symbols []string, interval time.Duration, seed int64) drepo.SignalFeed {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &SyntheticFeed{
		symbols:  append([]string(nil), symbols...),
		interval: interval,
		rng:      rand.New(rand.NewSource(seed)),
		prices:   make(map[string]float64),
	}
}

func (f *SyntheticFeed) params(symbol string) symbolParams {
	if p, ok := syntheticDefaults[symbol]; ok {
		return p
	}
	return symbolParams{name: symbol, currency: models.CurrencyUSD, drift: 0.07, vol: 0.18, initial: 100}
}

// Connect initializes starting prices.
func (f *SyntheticFeed) Connect(_ context.Context) error {
	for _, sym := range f.symbols {
		f.prices[sym] = f.params(sym).initial
	}
	f.connected = true
	return nil
}

// Subscribe is a no-op for the synthetic feed.
func (f *SyntheticFeed) Subscribe(_ context.Context) error {
	if !f.connected {
		return fmt.Errorf("synthetic feed not connected")
	}
	return nil
}

// Read emits one daily-step quote per symbol per tick.
func (f *SyntheticFeed) Read(ctx context.Context) (<-chan *models.MarketSignal, <-chan error) {
	signals := make(chan *models.MarketSignal, 64)
	errs := make(chan error, 1)

	go func() {
		defer close(signals)
		defer close(errs)
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := time.Now()
				for _, sym := range f.symbols {
					p := f.params(sym)
					prev := f.prices[sym]

					// one trading-day GBM step
					dailyDrift := p.drift / 252
					dailyVol := p.vol / math.Sqrt(252)
					ret := dailyDrift + dailyVol*f.rng.NormFloat64()
					price := prev * math.Exp(ret)
					f.prices[sym] = price

					sig := &models.MarketSignal{
						Symbol:        sym,
						Name:          p.name,
						Price:         price,
						Change:        price - prev,
						ChangePercent: (price - prev) / prev * 100,
						Currency:      p.currency,
						ObservedAt:    now,
					}
					select {
					case signals <- sig:
					default:
					}
				}
			}
		}
	}()

	return signals, errs
}

// Reconnect re-seeds nothing; the walk just continues.
func (f *SyntheticFeed) Reconnect(ctx context.Context) error {
	return f.Connect(ctx)
}

// Close marks the feed disconnected.
func (f *SyntheticFeed) Close() error {
	f.connected = false
	return nil
}

// IsConnected indicates status.
func (f *SyntheticFeed) IsConnected() bool { return f.connected }
