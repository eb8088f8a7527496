package di

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italianiuk/italianiuk-server/internal/config"
	"github.com/italianiuk/italianiuk-server/internal/di/providers"
	"github.com/italianiuk/italianiuk-server/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Environment: "test"},
		Logger: config.LoggerConfig{Level: "error"},
		Server: config.ServerConfig{
			Port:         "0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
		},
		Directory: config.DirectoryConfig{
			PlaceholderImage: config.DefaultPlaceholderImage,
			SuggestionEmail:  config.DefaultSuggestionEmail,
			CacheTTL:         time.Minute,
		},
		RateLimit: config.RateLimitConfig{Enabled: true, RPS: 10, Burst: 20},
	}
}

func TestBootstrap_EmbeddedData(t *testing.T) {
	injector := do.New()
	Register(injector)
	do.OverrideValue(injector, testConfig())
	t.Cleanup(func() { _ = injector.Shutdown() })

	require.NoError(t, Bootstrap(injector))

	dir := do.MustInvoke[*service.DirectoryService](injector)
	cities, listings := dir.Stats()
	assert.Positive(t, cities)
	assert.Positive(t, listings)

	searchSvc := do.MustInvoke[*service.SearchService](injector)
	indexed, err := searchSvc.IndexedCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(listings), indexed)

	srv := do.MustInvoke[*providers.HTTPServerHandle](injector)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	limiter := do.MustInvoke[*providers.RateLimiterHandle](injector)
	assert.NotNil(t, limiter.Limiter)
}

func TestBootstrap_MissingDataFile(t *testing.T) {
	cfg := testConfig()
	cfg.Directory.DataPath = t.TempDir() + "/missing.yaml"

	injector := do.New()
	Register(injector)
	do.OverrideValue(injector, cfg)
	t.Cleanup(func() { _ = injector.Shutdown() })

	err := Bootstrap(injector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open listings file")
}

func TestBootstrap_RateLimitDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Enabled = false

	injector := do.New()
	Register(injector)
	do.OverrideValue(injector, cfg)
	t.Cleanup(func() { _ = injector.Shutdown() })

	require.NoError(t, Bootstrap(injector))
	assert.Nil(t, do.MustInvoke[*providers.RateLimiterHandle](injector).Limiter)
}
