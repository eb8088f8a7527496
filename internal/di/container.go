// Package di provides dependency injection configuration for the directory server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/italianiuk/italianiuk-server/internal/config"
	"github.com/italianiuk/italianiuk-server/internal/di/providers"
	"github.com/italianiuk/italianiuk-server/internal/i18n"
	"github.com/italianiuk/italianiuk-server/internal/logger"
	"github.com/italianiuk/italianiuk-server/internal/metrics"
	"github.com/italianiuk/italianiuk-server/internal/present"
	"github.com/italianiuk/italianiuk-server/internal/service"
	"github.com/italianiuk/italianiuk-server/internal/store"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()
	Register(injector)
	return injector
}

// Register adds every provider to the injector. Tests override individual
// providers after calling it.
func Register(injector do.Injector) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)

	// Directory
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideTranslator)
	do.Provide(injector, providers.ProvidePresenter)
	do.Provide(injector, providers.ProvideDirectoryService)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)
}

// Bootstrap initializes all services so configuration and data errors
// surface before the server starts listening.
func Bootstrap(injector do.Injector) error {
	steps := []func(do.Injector) error{
		invoke[*config.Config],
		invoke[*logger.Logger],
		invoke[*metrics.Metrics],
		invoke[*store.Store],
		invoke[*i18n.Translator],
		invoke[*present.Presenter],
		invoke[*service.DirectoryService],
		invoke[*providers.SearchIndexHandle],
		invoke[*service.SearchService],
		invoke[*providers.RateLimiterHandle],
		invoke[*providers.HTTPServerHandle],
	}
	for _, step := range steps {
		if err := step(injector); err != nil {
			return err
		}
	}
	return nil
}

func invoke[T any](i do.Injector) error {
	_, err := do.Invoke[T](i)
	return err
}
