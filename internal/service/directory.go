package service

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/italianiuk/italianiuk-server/internal/directory"
	"github.com/italianiuk/italianiuk-server/internal/domain"
	domainerrors "github.com/italianiuk/italianiuk-server/internal/errors"
	"github.com/italianiuk/italianiuk-server/internal/metrics"
	"github.com/italianiuk/italianiuk-server/internal/present"
	"github.com/italianiuk/italianiuk-server/internal/store"
)

// Pages rendered for longer search text are not memoized.
const maxCachedTextLen = 64

const tracerName = "DirectoryService"

// DirectoryOptions configures a DirectoryService.
type DirectoryOptions struct {
	PlaceholderImage string
	// CacheTTL bounds page memoization. Zero disables it.
	CacheTTL time.Duration
}

// DirectoryService runs the directory pipeline against the listing snapshot
// and renders the result for a locale.
//
// Rendered pages are shared between requests through the cache and must be
// treated as read-only by callers.
type DirectoryService struct {
	store       *store.Store
	presenter   *present.Presenter
	metrics     *metrics.Metrics
	logger      *slog.Logger
	placeholder string
	cache       *cache.Cache
}

// NewDirectoryService creates a directory service.
func NewDirectoryService(
	st *store.Store,
	presenter *present.Presenter,
	m *metrics.Metrics,
	logger *slog.Logger,
	opts DirectoryOptions,
) *DirectoryService {
	s := &DirectoryService{
		store:       st,
		presenter:   presenter,
		metrics:     m,
		logger:      logger.With(slog.String("service", "directory")),
		placeholder: opts.PlaceholderImage,
	}
	if opts.CacheTTL > 0 {
		s.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	m.SnapshotLoaded(st.CityCount(), st.ListingCount())
	return s
}

// Directory renders the directory page for a query.
func (s *DirectoryService) Directory(ctx context.Context, locale domain.Locale, q domain.Query) *present.DirectoryPage {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Directory")
	defer span.End()

	span.SetAttributes(
		attribute.String("directory.locale", string(locale)),
		attribute.String("directory.category", string(q.Category)),
		attribute.String("directory.text", q.Text),
	)

	key := "dir|" + string(locale) + "|" + string(q.Category) + "|" + q.Text
	if page, ok := s.cached(key); ok {
		s.metrics.PageRendered("directory", string(locale), metrics.CacheHit)
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return page.(*present.DirectoryPage)
	}

	res := directory.Run(s.store, q, s.presenter.Translator().Labeler(locale), s.placeholder)
	page := s.presenter.Directory(locale, res)

	if utf8.RuneCountInString(q.Text) <= maxCachedTextLen {
		s.remember(key, page)
	}
	s.metrics.PageRendered("directory", string(locale), metrics.CacheMiss)
	s.metrics.DirectoryMatched(len(res.Filtered))

	s.logger.DebugContext(ctx, "rendered directory",
		slog.String("locale", string(locale)),
		slog.String("category", string(q.Category)),
		slog.Int("matched", len(res.Filtered)),
		slog.Int("featured", len(res.Featured)),
	)
	span.SetAttributes(attribute.Int("directory.matched", len(res.Filtered)))
	span.SetStatus(codes.Ok, "")

	return page
}

// City renders the detail page of one city. Unknown keys are NOT_FOUND;
// known cities without listings render with "coming soon" sections.
func (s *DirectoryService) City(ctx context.Context, locale domain.Locale, key string) (*present.CityPage, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "City")
	defer span.End()

	span.SetAttributes(
		attribute.String("directory.locale", string(locale)),
		attribute.String("directory.city", key),
	)

	bucket, ok := s.store.City(key)
	if !ok {
		err := domainerrors.NotFoundf("city %q not found", key)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown city")
		s.logger.DebugContext(ctx, "unknown city", slog.String("city", key))
		return nil, err
	}

	cacheKey := "city|" + string(locale) + "|" + key
	if page, ok := s.cached(cacheKey); ok {
		s.metrics.PageRendered("city", string(locale), metrics.CacheHit)
		return page.(*present.CityPage), nil
	}

	tr := s.presenter.Translator()
	summary := directory.Summarize(key, tr.CityLabel(locale, key), bucket, s.placeholder)
	page := s.presenter.City(locale, &summary, bucket)

	s.remember(cacheKey, page)
	s.metrics.PageRendered("city", string(locale), metrics.CacheMiss)
	span.SetAttributes(attribute.Int("city.total", summary.TotalCount))
	span.SetStatus(codes.Ok, "")

	return page, nil
}

// Summaries returns every city summary for a locale, empty cities included,
// in label order.
func (s *DirectoryService) Summaries(ctx context.Context, locale domain.Locale) []domain.CitySummary {
	_, span := otel.Tracer(tracerName).Start(ctx, "Summaries")
	defer span.End()

	return directory.Aggregate(s.store, s.presenter.Translator().Labeler(locale), s.placeholder)
}

// Stats reports the snapshot size.
func (s *DirectoryService) Stats() (cities, listings int) {
	return s.store.CityCount(), s.store.ListingCount()
}

func (s *DirectoryService) cached(key string) (any, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *DirectoryService) remember(key string, v any) {
	if s.cache != nil {
		s.cache.Set(key, v, cache.DefaultExpiration)
	}
}
