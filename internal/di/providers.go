package di

import (
	"context"
	"fmt"
	"time"

	"WealthSim/internal/domain/repository"
	"WealthSim/internal/handler/api"
	internalrepo "WealthSim/internal/repository"
	"WealthSim/internal/service/marketdata"
	"WealthSim/internal/services/montecarlo"
	"WealthSim/internal/services/valuation"
	"WealthSim/internal/usecase"
	"WealthSim/pkg/cache"
	pkgch "WealthSim/pkg/clickhouse"
	"WealthSim/pkg/config"
	xhttp "WealthSim/pkg/http"
	pkgkafka "WealthSim/pkg/kafka"
	applogger "WealthSim/pkg/logger"
	"WealthSim/pkg/metrics"
	"WealthSim/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when the history
// backend is clickhouse; otherwise it returns nil.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.History.Type != "clickhouse" {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.ClickHouse.Database),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.market_signals (ts DateTime64(3), symbol String, name String, price Float64, change Float64, change_percent Float64, currency String) ENGINE=MergeTree ORDER BY (symbol, ts)", cfg.ClickHouse.Database),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when the history
// backend is kafka; otherwise it returns nil.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.History.Type != "kafka" {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSignalStore creates ClickHouse signal storage when available.
func ProvideSignalStore(chClient *pkgch.Client, cfg *config.Config) repository.SignalStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseSignalStore(chClient.DB(), cfg.ClickHouse.Database+".market_signals")
}

// ProvideSignalPublisher creates a Kafka publisher when available.
func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SignalPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.Topic)
}

// ProvideSignalFeed creates the configured market feed.
func ProvideSignalFeed(cfg *config.Config) repository.SignalFeed {
	if cfg.Market.Source == "websocket" {
		return marketdata.NewWSClient(
			cfg.Market.APIKey,
			cfg.Market.WebSocketURL,
			cfg.Market.Symbols,
			cfg.Market.ReconnectDelay,
			cfg.Market.PingInterval,
		)
	}
	return marketdata.NewSyntheticFeed(cfg.Market.Symbols, cfg.Market.RefreshInterval, 0)
}

// ProvideSnapshotStore creates the latest-signal store.
func ProvideSnapshotStore(cfg *config.Config) *marketdata.SnapshotStore {
	return marketdata.NewSnapshotStore(cfg.Market.Symbols)
}

// ProvideCalculator creates the valuation calculator from the
// configured symbol binding.
func ProvideCalculator(cfg *config.Config) *valuation.Calculator {
	return valuation.NewCalculator(valuation.SymbolMap{
		Thai:  cfg.Valuation.ThaiSymbol,
		US:    cfg.Valuation.USSymbol,
		Fx:    cfg.Valuation.FxSymbol,
		Gold:  cfg.Valuation.GoldSymbol,
		Bonds: cfg.Valuation.BondSymbol,
	})
}

// ProvideEngine creates the Monte Carlo engine.
func ProvideEngine(cfg *config.Config) *montecarlo.Engine {
	return montecarlo.NewEngine(cfg.Simulation.Workers, cfg.Simulation.SamplePaths)
}

// ProvideCacheService creates the projection result cache. Returns nil
// when caching is disabled.
func ProvideCacheService(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideSignalProcessor creates the history processor use case.
func ProvideSignalProcessor(
	pub repository.SignalPublisher,
	store repository.SignalStore,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.SignalProcessor {
	return usecase.NewSignalProcessor(
		pub,
		store,
		metrics,
		cfg.History.Type,
		cfg.History.BatchSize,
		cfg.History.BatchTimeout,
	)
}

// ProvideSignalCollector creates the feed collector use case.
func ProvideSignalCollector(
	feed repository.SignalFeed,
	store *marketdata.SnapshotStore,
	processor *usecase.SignalProcessor,
	metrics repository.Metrics,
) *usecase.SignalCollector {
	return usecase.NewSignalCollector(feed, store, processor, metrics)
}

// ProvideValuationUsecase creates the valuation use case.
func ProvideValuationUsecase(
	store *marketdata.SnapshotStore,
	calc *valuation.Calculator,
	metrics repository.Metrics,
) *usecase.ValuationUsecase {
	return usecase.NewValuationUsecase(store, calc, metrics)
}

// ProvideProjectionUsecase creates the projection use case.
func ProvideProjectionUsecase(
	engine *montecarlo.Engine,
	cacheSvc cache.Service,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.ProjectionUsecase {
	return usecase.NewProjectionUsecase(engine, cacheSvc, cfg.Simulation.CacheTTL, metrics)
}

// ProvidePortfolioHandler creates the HTTP handler.
func ProvidePortfolioHandler(
	logger *applogger.Logger,
	valuationUC *usecase.ValuationUsecase,
	projectionUC *usecase.ProjectionUsecase,
	store *marketdata.SnapshotStore,
	history repository.SignalStore,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewPortfolioHandler(logger, valuationUC, projectionUC, store, history, api.ProjectionLimits{
		DefaultPaths:    cfg.Simulation.DefaultPaths,
		MaxHorizonYears: cfg.Simulation.MaxHorizonYears,
	})
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.SignalCollector,
	chClient *pkgch.Client,
	cacheSvc cache.Service,
	handler xhttp.Handler,
) *server.App {
	app := server.New(cfg, collector, chClient, cacheSvc, handler)
	if collector != nil {
		app.SignalProc = collector.Processor()
	}
	return app
}
