package transport

import "github.com/matthwyatt/qldb-go/lib/metrics"

// Transport metrics
var (
	// TransportRateLimited counts StartSession calls rejected by the
	// rate limiter.
	TransportRateLimited = metrics.NewCounter(
		"qldb_transport_ratelimit_rejections_total",
		"Total session starts rejected by rate limiting",
	)
	// TransportBreakerRejects counts calls rejected by the circuit breaker.
	TransportBreakerRejects = metrics.NewCounter(
		"qldb_transport_breaker_rejections_total",
		"Total transport calls rejected by the circuit breaker",
	)
	// TransportHealthy reports whether the ledger endpoint is healthy.
	TransportHealthy = metrics.NewGauge(
		"qldb_transport_healthy",
		"Whether the ledger endpoint is healthy (1=yes, 0=no)",
	)
	// HealthChecksTotal counts health probe attempts.
	HealthChecksTotal = metrics.NewCounter(
		"qldb_transport_healthchecks_total",
		"Total health probes against the ledger endpoint",
	)
)
