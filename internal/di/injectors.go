//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"sid/internal"
	"sid/internal/controllers"
	"sid/internal/persistence"
	"sid/internal/providers"
	"sid/internal/services"
	"sid/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewSessionProvider,

		services.NewRegistryService,
		services.NewProcessorService,
		internal.NewRegistryGauges,

		persistence.NewZstdCompressor,
		persistence.NewFileBlobStore,
		persistence.NewFileManager,
		persistence.NewScheduler,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
