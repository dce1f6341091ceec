// Package transport defines the contract between the session pool and
// the ledger service, plus decorators for rate limiting and circuit
// breaking around it.
//
// The wire protocol (SendCommand framing, request signing) is outside
// this module; callers supply a Transport implementation backed by their
// ledger client. Errors returned by a Transport are classified by
// lib/errors.Classify: wrap credential failures in (or alongside)
// errors.ErrCredentials so the pool can refuse to retry them.
package transport

import (
	"context"

	qldberrors "github.com/matthwyatt/qldb-go/lib/errors"
	"github.com/matthwyatt/qldb-go/lib/ratelimit"
	"github.com/matthwyatt/qldb-go/lib/resilience"
)

// Transport starts and ends sessions against a ledger.
type Transport interface {
	// StartSession opens a new session on the named ledger and returns
	// its opaque session token.
	StartSession(ctx context.Context, ledgerName string) (string, error)

	// EndSession terminates the session identified by token.
	EndSession(ctx context.Context, sessionToken string) error
}

// RateLimited bounds the rate of StartSession calls against the ledger
// service. Rejected calls fail with a recoverable ErrRateLimited, so the
// pool's retry policy backs off and tries again. EndSession is never
// throttled: delaying closes only keeps remote sessions alive longer.
type RateLimited struct {
	next    Transport
	limiter *ratelimit.Limiter
}

// RateLimit wraps next with a token bucket of perSecond tokens and the
// given burst capacity.
func RateLimit(next Transport, perSecond float64, burst int) *RateLimited {
	return &RateLimited{
		next:    next,
		limiter: ratelimit.New(perSecond, burst),
	}
}

// StartSession implements Transport.
func (t *RateLimited) StartSession(ctx context.Context, ledgerName string) (string, error) {
	if !t.limiter.Allow() {
		TransportRateLimited.Inc()
		return "", qldberrors.Recoverable(qldberrors.ErrRateLimited)
	}
	return t.next.StartSession(ctx, ledgerName)
}

// EndSession implements Transport.
func (t *RateLimited) EndSession(ctx context.Context, sessionToken string) error {
	return t.next.EndSession(ctx, sessionToken)
}

// Breaker fails session operations fast while the ledger endpoint is
// unhealthy. Rejections surface as recoverable ErrCircuitOpen errors, so
// waiting requesters keep waiting and the retry policy re-probes once
// the circuit half-opens.
type Breaker struct {
	next Transport
	cb   *resilience.CircuitBreaker
}

// WithBreaker wraps next with a circuit breaker.
func WithBreaker(name string, next Transport, cfg resilience.Config) *Breaker {
	return &Breaker{
		next: next,
		cb:   resilience.NewCircuitBreaker(name, cfg),
	}
}

// State returns the current circuit state.
func (t *Breaker) State() resilience.State {
	return t.cb.State()
}

// StartSession implements Transport.
func (t *Breaker) StartSession(ctx context.Context, ledgerName string) (string, error) {
	if !t.cb.Allow() {
		TransportBreakerRejects.Inc()
		return "", qldberrors.Recoverable(qldberrors.ErrCircuitOpen)
	}
	token, err := t.next.StartSession(ctx, ledgerName)
	t.record(err)
	return token, err
}

// EndSession implements Transport.
func (t *Breaker) EndSession(ctx context.Context, sessionToken string) error {
	if !t.cb.Allow() {
		TransportBreakerRejects.Inc()
		return qldberrors.Recoverable(qldberrors.ErrCircuitOpen)
	}
	err := t.next.EndSession(ctx, sessionToken)
	t.record(err)
	return err
}

// record feeds the breaker. Unrecoverable errors (bad credentials) say
// nothing about endpoint health and are not counted as failures.
func (t *Breaker) record(err error) {
	if err == nil {
		t.cb.RecordSuccess()
		return
	}
	if qldberrors.Classify(err) == qldberrors.ClassUnrecoverable {
		return
	}
	t.cb.RecordFailure()
}
