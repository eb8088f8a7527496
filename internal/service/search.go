package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/italianiuk/italianiuk-server/internal/domain"
	domainerrors "github.com/italianiuk/italianiuk-server/internal/errors"
	"github.com/italianiuk/italianiuk-server/internal/metrics"
	"github.com/italianiuk/italianiuk-server/internal/search"
	"github.com/italianiuk/italianiuk-server/internal/store"
)

// SearchService bridges the listing index with the snapshot: it builds the
// index from the store and runs validated listing searches.
type SearchService struct {
	index   *search.ListingIndex
	store   *store.Store
	metrics *metrics.Metrics
	logger  *slog.Logger

	ready atomic.Bool
}

// NewSearchService creates a search service. Searches fail with UNAVAILABLE
// until the first successful Reindex.
func NewSearchService(index *search.ListingIndex, st *store.Store, m *metrics.Metrics, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:   index,
		store:   st,
		metrics: m,
		logger:  logger.With(slog.String("service", "search")),
	}
}

// Reindex rebuilds the index from every listing in the store.
func (s *SearchService) Reindex(ctx context.Context) error {
	_, span := otel.Tracer("SearchService").Start(ctx, "Reindex")
	defer span.End()

	refs := s.store.Listings()
	docs := make([]*search.ListingDocument, 0, len(refs))
	for i := range refs {
		docs = append(docs, search.NewListingDocument(refs[i].City, refs[i].Category, &refs[i].Listing))
	}

	if err := s.index.Rebuild(docs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rebuild failed")
		return fmt.Errorf("rebuild listing index: %w", err)
	}

	s.ready.Store(true)
	span.SetAttributes(attribute.Int("search.documents", len(docs)))
	s.logger.InfoContext(ctx, "listing index ready", slog.Int("documents", len(docs)))
	return nil
}

// Search runs a listing search. The category must be "all", empty, or a
// listing category, and the city, when given, must exist.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	ctx, span := otel.Tracer("SearchService").Start(ctx, "Search")
	defer span.End()

	params.City = strings.ToLower(strings.TrimSpace(params.City))

	span.SetAttributes(
		attribute.String("search.query", params.Query),
		attribute.String("search.category", string(params.Category)),
		attribute.String("search.city", params.City),
	)

	if !s.ready.Load() {
		s.metrics.SearchDone("unavailable")
		return nil, domainerrors.Unavailable("listing index is not ready")
	}
	if params.Category != "" && params.Category != domain.CategoryAll && !params.Category.IsListing() {
		s.metrics.SearchDone("invalid")
		return nil, domainerrors.Validationf("unknown category %q", params.Category)
	}
	if params.City != "" && !s.store.Has(params.City) {
		s.metrics.SearchDone("invalid")
		return nil, domainerrors.Validationf("unknown city %q", params.City)
	}

	res, err := s.index.Search(ctx, params)
	if err != nil {
		s.metrics.SearchDone("error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		s.logger.ErrorContext(ctx, "listing search failed", slog.Any("error", err))
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
	}

	outcome := "ok"
	if res.Total == 0 {
		outcome = "empty"
	}
	s.metrics.SearchDone(outcome)
	span.SetAttributes(attribute.Int64("search.total", int64(res.Total)))
	span.SetStatus(codes.Ok, "")

	return res, nil
}

// IndexedCount returns the number of indexed listings.
func (s *SearchService) IndexedCount() (uint64, error) {
	return s.index.DocumentCount()
}
