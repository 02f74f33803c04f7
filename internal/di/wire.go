//go:build wireinject
// +build wireinject

package di

import (
	"DelistRadar/pkg/config"
	"DelistRadar/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisClient,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideStateStore,
		ProvideNotifier,
		ProvideAlertPublisher,
		ProvideAlertArchive,

		// Feeds
		ProvideBinanceStream,
		ProvideBybitPoller,
		ProvideArticleFetcher,

		// Use cases
		ProvideParser,
		ProvidePipeline,
		ProvideCollector,
		ProvidePoller,

		// HTTP and application
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
