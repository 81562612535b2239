//go:build wireinject
// +build wireinject

package di

import (
	"MoonPulse/pkg/config"
	"MoonPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideStreamClient,

		// External sources
		ProvideMarketSource,
		ProvideLunarResolver,
		ProvideKpResolver,
		ProvideNarrator,

		// Oracle core
		ProvideRand,
		ProvideClassifier,
		ProvideReportFormatter,

		// Use cases
		ProvideReportBuilder,
		ProvideReportPublisher,
		ProvideTickCollector,
		ProvideReportsHandler,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
