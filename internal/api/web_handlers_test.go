package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryPage(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.get(t, "/directory")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "en", w.Header().Get("Content-Language"))

	body := w.Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "Italian Directory UK")
	assert.Contains(t, body, "All 3 cities")
	assert.Contains(t, body, `href="/directory/london"`)
	assert.Contains(t, body, `href="/it/directory"`)
	assert.Contains(t, body, `<link rel="alternate" hreflang="it" href="/it/directory">`)
	assert.NotContains(t, body, "/directory/bradford")
}

func TestDirectoryPage_ItalianQuery(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.get(t, "/it/directory?q=LOND")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `<html lang="it">`)
	assert.Contains(t, body, "Londra")
	assert.Contains(t, body, "1 città trovata")
	assert.Contains(t, body, `value="LOND"`)
	assert.Contains(t, body, `href="/it/directory/london"`)
	// The English alternate keeps the query.
	assert.Contains(t, body, `href="/directory?q=LOND"`)
}

func TestDirectoryPage_NoMatches(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.get(t, "/directory?q=glasgow&cat=delis")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `data-kind="no_matches"`)
	assert.Contains(t, body, "No cities match your search")
	assert.Contains(t, body, `href="/directory"`)
	assert.Contains(t, body, "mailto:dir@example.org")
}

func TestCityPage(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.get(t, "/it/directory/manchester")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Casa Italia")
	assert.Contains(t, body, "In arrivo")
	assert.Contains(t, body, `href="/it/directory"`)
	assert.Contains(t, body, `href="/directory/manchester"`)
}

func TestCityPage_ExternalLink(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.get(t, "/directory/london")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `href="https://bocca.example" target="_blank" rel="noopener"`)
	assert.Contains(t, body, `href="#"`)
}

func TestCityPage_NotFound(t *testing.T) {
	ts := setupTestServer(t, Options{})

	tests := []struct {
		path    string
		message string
	}{
		{"/directory/york", "City not found"},
		{"/it/directory/york", "Città non trovata"},
		{"/it/somewhere", "Città non trovata"},
		{"/nowhere", "City not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := ts.get(t, tt.path)
			require.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, CacheNoStore, w.Header().Get("Cache-Control"))
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestUnknownAPIPathIsEnveloped404(t *testing.T) {
	ts := setupTestServer(t, Options{})

	w := ts.get(t, "/api/v1/nothing")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.NotContains(t, w.Body.String(), "<html")

	env := decodeEnvelope(t, w.Body.Bytes(), nil)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
	assert.Equal(t, "no API route for /api/v1/nothing", env.Message)
}
