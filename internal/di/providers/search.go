package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/italianiuk/italianiuk-server/internal/logger"
	"github.com/italianiuk/italianiuk-server/internal/metrics"
	"github.com/italianiuk/italianiuk-server/internal/search"
	"github.com/italianiuk/italianiuk-server/internal/service"
	"github.com/italianiuk/italianiuk-server/internal/store"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.ListingIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory Bleve listing index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewListingIndex(search.Options{
		Logger: log.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{ListingIndex: index}, nil
}

// ProvideSearchService provides the search service with the snapshot indexed.
// The snapshot never changes, so the index is built once here.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	st := do.MustInvoke[*store.Store](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSearchService(indexHandle.ListingIndex, st, m, log.Logger)
	if err := svc.Reindex(context.Background()); err != nil {
		return nil, err
	}

	return svc, nil
}
