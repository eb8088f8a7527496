package api

// Cache-Control header values.
const (
	CacheFiveMinutes = "public, max-age=300"
	CacheNoStore     = "no-cache"
)

// Health statuses reported by /health.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)
