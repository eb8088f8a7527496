// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "italianiuk"

// Cache outcomes for page renders.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Metrics owns a private registry so tests and multiple servers never
// collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	pageRenders    *prometheus.CounterVec
	matchedCities  prometheus.Histogram
	searches       *prometheus.CounterVec
	requests       *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
	rateLimited    prometheus.Counter
	cities         prometheus.Gauge
	listings       prometheus.Gauge
}

// New creates and registers all collectors, plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_renders_total",
			Help:      "Directory and city page renders by page, locale and cache outcome.",
		}, []string{"page", "locale", "cache"}),
		matchedCities: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "directory_matched_cities",
			Help:      "Number of cities matching a directory query.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_searches_total",
			Help:      "Listing searches by outcome.",
		}, []string{"outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		cities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "directory_cities",
			Help:      "Cities in the loaded listing snapshot.",
		}),
		listings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "directory_listings",
			Help:      "Listings in the loaded listing snapshot.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.pageRenders, m.matchedCities, m.searches,
		m.requests, m.requestSeconds, m.rateLimited,
		m.cities, m.listings,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// PageRendered records a page render.
func (m *Metrics) PageRendered(page, locale, cache string) {
	m.pageRenders.WithLabelValues(page, locale, cache).Inc()
}

// DirectoryMatched records how many cities a query matched.
func (m *Metrics) DirectoryMatched(n int) {
	m.matchedCities.Observe(float64(n))
}

// SearchDone records a listing search outcome: "ok", "empty", "invalid",
// "unavailable" or "error".
func (m *Metrics) SearchDone(outcome string) {
	m.searches.WithLabelValues(outcome).Inc()
}

// RequestServed records one HTTP request.
func (m *Metrics) RequestServed(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestSeconds.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RateLimited records a rejected request.
func (m *Metrics) RateLimited() {
	m.rateLimited.Inc()
}

// SnapshotLoaded records the size of the listing snapshot.
func (m *Metrics) SnapshotLoaded(cities, listings int) {
	m.cities.Set(float64(cities))
	m.listings.Set(float64(listings))
}
