package pool

import (
	"context"

	qldberrors "github.com/matthwyatt/qldb-go/lib/errors"
	"github.com/matthwyatt/qldb-go/lib/retry"
	"github.com/matthwyatt/qldb-go/lib/transport"
)

// DefaultMaxSessions is the pool capacity used when none is configured.
const DefaultMaxSessions = 10

// Config controls a SessionPool.
type Config struct {
	// MaxSessions caps the number of live sessions (checked out plus
	// idle). Values below 1 fall back to DefaultMaxSessions.
	MaxSessions int

	// Retry governs session creation and remote close attempts.
	Retry retry.Policy
}

// DefaultConfig returns the stock pool configuration.
func DefaultConfig() Config {
	return Config{
		MaxSessions: DefaultMaxSessions,
		Retry:       retry.DefaultPolicy(),
	}
}

func (c Config) normalized() Config {
	if c.MaxSessions < 1 {
		c.MaxSessions = DefaultMaxSessions
	}
	return c
}

// SessionPool is a bounded pool of ephemeral sessions against one
// ledger. Sessions are created lazily on demand, reused until they
// expire, and closed remotely when evicted. All methods are safe for
// concurrent use.
type SessionPool struct {
	actor *actor
}

// New creates a pool of at most maxSessions sessions against the named
// ledger, using the default retry policy.
func New(tr transport.Transport, ledgerName string, maxSessions int) *SessionPool {
	cfg := DefaultConfig()
	cfg.MaxSessions = maxSessions
	return NewWithConfig(tr, ledgerName, cfg)
}

// NewWithConfig creates a pool with explicit configuration. Out-of-range
// values are replaced with defaults.
func NewWithConfig(tr transport.Transport, ledgerName string, cfg Config) *SessionPool {
	a := newActor(tr, ledgerName, cfg.normalized())
	a.start()
	PoolSessionsMax.Set(float64(a.cfg.MaxSessions))
	return &SessionPool{actor: a}
}

// Get returns a session, blocking until one is available, the context
// ends, or the pool closes. The caller owns the session until it hands
// it back with GiveBack.
func (p *SessionPool) Get(ctx context.Context) (*Session, error) {
	a := p.actor
	w := newWaiter()

	select {
	case a.commands <- requestCommand{w: w}:
	case <-a.closing.Done():
		return nil, qldberrors.ErrPoolClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case s := <-w.ch:
		return s, nil
	case <-ctx.Done():
		// A delivery may have won the race; recover the session and
		// hand it back rather than leak it.
		if s, ok := w.cancel(); ok {
			p.GiveBack(s)
		}
		return nil, ctx.Err()
	case <-a.closing.Done():
		if s, ok := w.cancel(); ok {
			return s, nil
		}
		return nil, qldberrors.ErrPoolClosed
	}
}

// GiveBack returns a session to the pool. After close, or when the
// command backlog is full, the session is silently dropped: the remote
// side expires it on its own schedule.
func (p *SessionPool) GiveBack(s *Session) {
	if s == nil {
		return
	}
	a := p.actor
	select {
	case a.commands <- returnCommand{session: s}:
	case <-a.closing.Done():
	default:
	}
}

// Close shuts the pool down. Idempotent and safe to call concurrently;
// pending and future Gets fail with ErrPoolClosed.
func (p *SessionPool) Close() {
	p.actor.closing.Close()
	log.WithField("ledger", p.actor.ledger).Debug("pool closed")
}

// Stats is a point-in-time snapshot of pool state.
type Stats struct {
	MaxSessions    int
	Active         int
	Idle           int
	Waiters        int
	Created        uint64
	CreateFailures uint64
	Evicted        uint64
	Abandoned      uint64
}

// Stats snapshots the pool counters.
func (p *SessionPool) Stats() Stats {
	a := p.actor
	a.mu.Lock()
	st := Stats{
		MaxSessions: a.cfg.MaxSessions,
		Active:      a.active,
		Idle:        a.idle.len(),
		Waiters:     a.waiters.len(),
	}
	a.mu.Unlock()
	st.Created = a.created.Load()
	st.CreateFailures = a.createFailures.Load()
	st.Evicted = a.evicted.Load()
	st.Abandoned = a.abandoned.Load()
	return st
}
