// Package pool manages a bounded pool of ephemeral, time-limited
// sessions to a ledger database, so that many concurrent callers reuse a
// small number of expensive-to-create sessions instead of starting one
// per operation.
//
// The pool supports:
//   - A hard ceiling on concurrently live sessions
//   - FIFO reuse of idle sessions and FIFO service of waiting callers
//   - Automatic eviction of sessions older than their ten-minute lifetime
//   - Retry with quadratic backoff on session creation and close
//   - Idempotent, cooperative shutdown
//
// # Basic Usage
//
//	p := pool.New(tr, "my-ledger", 10)
//	defer p.Close()
//
//	s, err := p.Get(ctx)
//	if err != nil {
//	    return err
//	}
//	// Use s.Token() against the ledger...
//	p.GiveBack(s)
//
// # Concurrency model
//
// All mutable pool state lives in a worker domain of two goroutines: a
// command loop consuming Get/GiveBack commands in strict arrival order,
// and a creation loop consuming demand signals under admission control.
// Callers interact with the worker only through channels; GiveBack is
// best-effort and never fails, Get fails with errors.ErrPoolClosed once
// the pool is closed.
//
// # Metrics
//
// Pool activity is exported through the metrics package:
//   - qldb_pool_sessions_max: configured ceiling
//   - qldb_pool_sessions_active: sessions currently live
//   - qldb_pool_sessions_idle: sessions parked in the pool
//   - qldb_pool_waiters: callers waiting for a session
//   - qldb_pool_created_total / qldb_pool_create_failures_total
//   - qldb_pool_evicted_total / qldb_pool_evictions_abandoned_total
package pool
