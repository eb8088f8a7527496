package providers

import (
	"github.com/samber/do/v2"

	"github.com/italianiuk/italianiuk-server/internal/config"
	"github.com/italianiuk/italianiuk-server/internal/i18n"
	"github.com/italianiuk/italianiuk-server/internal/logger"
	"github.com/italianiuk/italianiuk-server/internal/metrics"
	"github.com/italianiuk/italianiuk-server/internal/present"
	"github.com/italianiuk/italianiuk-server/internal/service"
	"github.com/italianiuk/italianiuk-server/internal/store"
	"github.com/italianiuk/italianiuk-server/internal/validation"
)

// ProvideStore loads the listing snapshot. A load failure aborts startup.
func ProvideStore(i do.Injector) (*store.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := store.Open(cfg.Directory.DataPath, validation.New())
	if err != nil {
		return nil, err
	}

	log.Info("Listing snapshot loaded",
		"cities", st.CityCount(),
		"listings", st.ListingCount(),
	)

	return st, nil
}

// ProvideTranslator provides the EN/IT message catalog.
func ProvideTranslator(i do.Injector) (*i18n.Translator, error) {
	return i18n.New()
}

// ProvidePresenter provides the presentation adapter.
func ProvidePresenter(i do.Injector) (*present.Presenter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tr := do.MustInvoke[*i18n.Translator](i)

	return present.New(tr, present.Options{
		SuggestionEmail: cfg.Directory.SuggestionEmail,
		BaseURL:         cfg.Server.BaseURL,
	}), nil
}

// ProvideDirectoryService provides the directory pipeline service.
func ProvideDirectoryService(i do.Injector) (*service.DirectoryService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	st := do.MustInvoke[*store.Store](i)
	presenter := do.MustInvoke[*present.Presenter](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDirectoryService(st, presenter, m, log.Logger, service.DirectoryOptions{
		PlaceholderImage: cfg.Directory.PlaceholderImage,
		CacheTTL:         cfg.Directory.CacheTTL,
	}), nil
}
