//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"chessetl/internal"
	"chessetl/internal/controllers"
	"chessetl/internal/dataset"
	"chessetl/internal/fetch"
	"chessetl/internal/perspective"
	"chessetl/internal/pipeline"
	"chessetl/internal/providers"
	"chessetl/internal/services"
	"chessetl/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewMetricsProvider,

		dataset.NewZstdCompressor,
		dataset.NewFileManager,
		services.NewDatasetService,
		pipeline.NewNormalizer,
		pipeline.NewBuilder,
		perspective.NewProjector,
		fetch.NewFetcher,
		pipeline.NewRunner,
		pipeline.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitRunner(cfg *structures.CliFlags) (*pipeline.Runner, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewMetricsProvider,

		dataset.NewZstdCompressor,
		dataset.NewFileManager,
		services.NewDatasetService,
		pipeline.NewNormalizer,
		pipeline.NewBuilder,
		perspective.NewProjector,
		fetch.NewFetcher,
		pipeline.NewRunner,
	)

	return nil, nil
}
