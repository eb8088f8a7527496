package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italianiuk/italianiuk-server/internal/domain"
	"github.com/italianiuk/italianiuk-server/internal/i18n"
	"github.com/italianiuk/italianiuk-server/internal/logger"
	"github.com/italianiuk/italianiuk-server/internal/metrics"
	"github.com/italianiuk/italianiuk-server/internal/present"
	"github.com/italianiuk/italianiuk-server/internal/ratelimit"
	"github.com/italianiuk/italianiuk-server/internal/search"
	"github.com/italianiuk/italianiuk-server/internal/service"
	"github.com/italianiuk/italianiuk-server/internal/store"
	"github.com/italianiuk/italianiuk-server/internal/validation"
)

// testServer wraps Server with the huma test API.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(map[string]domain.CityBucket{
		"london": {
			domain.CategoryRestaurants: {
				{Slug: "bocca", Name: "Bocca di Lupo", Address: "12 Archer St, Soho", Short: "Regional Italian small plates", Website: "https://bocca.example"},
				{Slug: "padella", Name: "Padella", Address: "Borough Market", Short: "Fresh pasta"},
			},
			domain.CategoryDelis: {{Slug: "lina", Name: "Lina Stores", Address: "Brewer St, Soho", Short: "Deli since 1944", Image: "/img/lina.jpg"}},
		},
		"leeds":      {domain.CategoryRestaurants: {{Slug: "salvos", Name: "Salvos", Address: "Headingley", Short: "Family trattoria"}}},
		"manchester": {domain.CategoryShops: {{Slug: "casa", Name: "Casa Italia", Address: "Ancoats", Short: "Groceries"}}},
		"bradford":   {},
	}, validation.New())
	require.NoError(t, err)
	return st
}

func setupTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()

	st := testStore(t)
	log := logger.Discard().Logger
	m := metrics.New()

	tr, err := i18n.New()
	require.NoError(t, err)
	presenter := present.New(tr, present.Options{SuggestionEmail: "dir@example.org"})

	index, err := search.NewListingIndex(search.Options{Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	searchSvc := service.NewSearchService(index, st, m, log)
	require.NoError(t, searchSvc.Reindex(context.Background()))

	services := &Services{
		Directory: service.NewDirectoryService(st, presenter, m, log, service.DirectoryOptions{
			PlaceholderImage: "/img/placeholder.jpg",
			CacheTTL:         time.Minute,
		}),
		Search:     searchSvc,
		Translator: tr,
	}

	s, err := NewServer(services, m, log, opts)
	require.NoError(t, err)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.API()),
	}
}

// envelope is the decoded form of both envelope shapes.
type envelope struct {
	Version int             `json:"v"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, body []byte, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	require.Equal(t, EnvelopeVersion, env.Version)
	if data != nil {
		require.True(t, env.Success, string(body))
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (ts *testServer) get(t *testing.T, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	decodeEnvelope(t, resp.Body.Bytes(), &health)

	assert.Equal(t, statusHealthy, health.Status)
	require.Contains(t, health.Components, "directory")
	require.Contains(t, health.Components, "search")
	assert.Equal(t, statusHealthy, health.Components["directory"].Status)
	assert.Equal(t, "4 cities, 5 listings", health.Components["directory"].Message)
	assert.Equal(t, statusHealthy, health.Components["search"].Status)
}

func TestHealthCheck_Unconfigured(t *testing.T) {
	s := &Server{}

	out, err := s.handleHealthCheck(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, statusDegraded, out.Body.Status)
	assert.Equal(t, statusDegraded, out.Body.Components["directory"].Status)
	assert.Equal(t, statusDegraded, out.Body.Components["search"].Status)
}

func TestRequestID(t *testing.T) {
	ts := setupTestServer(t, Options{})

	t.Run("generated", func(t *testing.T) {
		w := ts.get(t, "/health")
		assert.True(t, strings.HasPrefix(w.Header().Get("X-Request-Id"), "req-"))
	})

	t.Run("propagated", func(t *testing.T) {
		w := ts.get(t, "/health", "X-Request-Id", "abc123")
		assert.Equal(t, "abc123", w.Header().Get("X-Request-Id"))
	})
}

func TestCORS_OnlyOnAPI(t *testing.T) {
	ts := setupTestServer(t, Options{CORSOrigins: []string{"https://italianiuk.org"}})

	w := ts.get(t, "/api/v1/directory", "Origin", "https://italianiuk.org")
	assert.Equal(t, "https://italianiuk.org", w.Header().Get("Access-Control-Allow-Origin"))

	w = ts.get(t, "/api/v1/directory", "Origin", "https://elsewhere.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = ts.get(t, "/directory", "Origin", "https://italianiuk.org")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.New(0.001, 2)
	t.Cleanup(limiter.Stop)
	ts := setupTestServer(t, Options{RateLimiter: limiter})

	for range 2 {
		w := ts.get(t, "/api/v1/directory")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := ts.get(t, "/api/v1/directory")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	env := decodeEnvelope(t, w.Body.Bytes(), nil)
	assert.False(t, env.Success)
	assert.Equal(t, "RATE_LIMITED", env.Code)
	assert.NotEmpty(t, env.Message, "coded errors carry their text in message")
	assert.Empty(t, env.Error)

	// Pages and health are not throttled.
	assert.Equal(t, http.StatusOK, ts.get(t, "/directory").Code)
	assert.Equal(t, http.StatusOK, ts.get(t, "/health").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t, Options{})

	ts.get(t, "/api/v1/directory/cities/london")

	w := ts.get(t, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "italianiuk_directory_cities 4")
	assert.Contains(t, body, `route="/api/v1/directory/cities/{key}"`)
	assert.Contains(t, body, "go_goroutines")
}
