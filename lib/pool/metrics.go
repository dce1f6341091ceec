package pool

import (
	"github.com/matthwyatt/qldb-go/lib/metrics"
)

var (
	PoolSessionsMax = metrics.NewGauge(
		"qldb_pool_sessions_max",
		"Configured session ceiling",
	)
	PoolSessionsActive = metrics.NewGauge(
		"qldb_pool_sessions_active",
		"Live sessions, checked out plus idle",
	)
	PoolSessionsIdle = metrics.NewGauge(
		"qldb_pool_sessions_idle",
		"Sessions parked in the idle store",
	)
	PoolWaiters = metrics.NewGauge(
		"qldb_pool_waiters",
		"Callers blocked waiting for a session",
	)
	PoolCreatedTotal = metrics.NewCounter(
		"qldb_pool_created_total",
		"Sessions created",
	)
	PoolCreateFailures = metrics.NewCounter(
		"qldb_pool_create_failures_total",
		"Session creation attempts that exhausted retries or hit an unrecoverable error",
	)
	PoolEvictedTotal = metrics.NewCounter(
		"qldb_pool_evicted_total",
		"Sessions evicted after expiry or failed return",
	)
	PoolEvictionsAbandoned = metrics.NewCounter(
		"qldb_pool_evictions_abandoned_total",
		"Evictions whose remote close never succeeded",
	)
)

// UpdateMetrics publishes a stats snapshot to the pool gauges.
func UpdateMetrics(st Stats) {
	PoolSessionsMax.Set(float64(st.MaxSessions))
	PoolSessionsActive.Set(float64(st.Active))
	PoolSessionsIdle.Set(float64(st.Idle))
	PoolWaiters.Set(float64(st.Waiters))
}
