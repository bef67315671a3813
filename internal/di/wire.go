//go:build wireinject
// +build wireinject

package di

import (
	"Diversonal/pkg/config"
	"Diversonal/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideClickHouseClient,
		ProvideCache,

		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Repositories and gateways
		ProvideScoreSinks,
		ProvideMarketData,
		ProvideCompleter,

		// Services and use cases
		ProvideScorer,
		ProvideAggregator,
		ProvideAssetData,

		// Transport
		ProvideRateLimiter,
		ProvideHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
