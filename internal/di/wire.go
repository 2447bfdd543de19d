//go:build wireinject
// +build wireinject

package di

import (
	"WealthSim/pkg/config"
	"WealthSim/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCacheService,

		// Repositories
		ProvideSignalStore,
		ProvideSignalPublisher,
		ProvideSignalFeed,
		ProvideSnapshotStore,

		// Domain services
		ProvideCalculator,
		ProvideEngine,

		// Use cases
		ProvideSignalProcessor,
		ProvideSignalCollector,
		ProvideValuationUsecase,
		ProvideProjectionUsecase,

		// HTTP
		ProvidePortfolioHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
