package pool

import (
	"context"
	"sync"
	"sync/atomic"

	qldberrors "github.com/matthwyatt/qldb-go/lib/errors"
	"github.com/matthwyatt/qldb-go/lib/retry"
	"github.com/matthwyatt/qldb-go/lib/transport"
)

// commandBacklog bounds the command channel. Get blocks (with a closed
// escape) when the backlog is full; GiveBack drops the return instead.
const commandBacklog = 128

// actor is the worker domain: two goroutines (command loop, creation
// loop) sharing the idle store, waiter store and active count under one
// mutex. All other code reaches this state only through the command and
// demand channels.
type actor struct {
	transport transport.Transport
	ledger    string
	cfg       Config

	mu      sync.Mutex
	idle    sessionQueue
	waiters waiterQueue
	active  int

	commands chan poolCommand
	demand   chan struct{}
	closing  *closer

	// ctx ends when the pool closes; in-flight retries stop at their
	// next backoff wait instead of running their schedule out.
	ctx    context.Context
	cancel context.CancelFunc

	created        atomic.Uint64
	createFailures atomic.Uint64
	evicted        atomic.Uint64
	abandoned      atomic.Uint64
}

func newActor(tr transport.Transport, ledgerName string, cfg Config) *actor {
	ctx, cancel := context.WithCancel(context.Background())
	return &actor{
		transport: tr,
		ledger:    ledgerName,
		cfg:       cfg,
		commands:  make(chan poolCommand, commandBacklog),
		demand:    make(chan struct{}, 1),
		closing:   newCloser(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// start launches the worker domain.
func (a *actor) start() {
	go a.commandLoop()
	go a.creationLoop()
	go func() {
		<-a.closing.Done()
		a.cancel()
	}()
}

// commandLoop is the single consumer of the command channel; commands
// are processed in strict send order.
func (a *actor) commandLoop() {
	for {
		select {
		case <-a.closing.Done():
			log.WithField("ledger", a.ledger).Debug("command loop stopped")
			return
		case cmd := <-a.commands:
			switch c := cmd.(type) {
			case returnCommand:
				a.handleReturn(c.session)
			case requestCommand:
				a.handleRequest(c.w)
			}
		}
	}
}

func (a *actor) handleReturn(s *Session) {
	if !s.Valid() {
		a.evict(s)
		return
	}

	a.mu.Lock()
	a.idle.push(s)
	a.mu.Unlock()

	a.pairWaiting()
}

func (a *actor) handleRequest(w *waiter) {
	for {
		a.mu.Lock()
		s, ok := a.idle.pop()
		a.mu.Unlock()

		if !ok {
			a.mu.Lock()
			a.waiters.push(w)
			a.mu.Unlock()
			a.signalDemand()
			return
		}
		if !s.Valid() {
			a.evict(s)
			continue
		}

		// Delivery fails only when the caller already gave up; the
		// session goes back to the store and the request is spent.
		a.deliver(w, s)
		return
	}
}

// creationLoop consumes demand signals one at a time. Signals are
// coalesced: redundant triggers collapse into one pending signal.
func (a *actor) creationLoop() {
	for {
		select {
		case <-a.closing.Done():
			log.WithField("ledger", a.ledger).Debug("creation loop stopped")
			return
		case <-a.demand:
		}

		a.mu.Lock()
		free := a.active < a.cfg.MaxSessions
		a.mu.Unlock()
		if !free {
			// Admission control: at the ceiling the signal is dropped.
			continue
		}

		s, err := a.createSession()
		if err != nil {
			// Contained failure: no waiter is failed, a future request
			// re-emits demand.
			a.createFailures.Add(1)
			PoolCreateFailures.Inc()
			log.WithError(err).WithField("ledger", a.ledger).Warn("session creation failed")
			continue
		}

		a.mu.Lock()
		a.active++
		a.idle.push(s)
		a.mu.Unlock()
		a.created.Add(1)
		PoolCreatedTotal.Inc()
		log.WithField("ledger", a.ledger).Debug("session created")

		a.pairWaiting()

		a.mu.Lock()
		again := a.waiters.len() > 0 && a.active < a.cfg.MaxSessions
		a.mu.Unlock()
		if again {
			a.signalDemand()
		}
	}
}

// signalDemand emits a demand trigger without blocking; a trigger that
// is already pending absorbs the new one.
func (a *actor) signalDemand() {
	select {
	case a.demand <- struct{}{}:
	default:
	}
}

// deliver attempts non-blocking delivery of s to w. On failure the
// session returns to the idle store's entry position.
func (a *actor) deliver(w *waiter, s *Session) bool {
	if w.deliver(s) {
		return true
	}
	a.mu.Lock()
	a.idle.requeue(s)
	a.mu.Unlock()
	return false
}

// pairWaiting pops idle sessions and waiters pairwise until either store
// is empty. Expired sessions found along the way are evicted; a session
// popped against an empty waiter store goes back to the idle store.
func (a *actor) pairWaiting() {
	for {
		a.mu.Lock()
		s, ok := a.idle.pop()
		if !ok {
			a.mu.Unlock()
			return
		}
		w, wok := a.waiters.pop()
		a.mu.Unlock()

		if !wok {
			a.mu.Lock()
			a.idle.requeue(s)
			a.mu.Unlock()
			return
		}
		if !s.Valid() {
			// The waiter was already popped; return it to the store
			// before evicting so the next round can serve it.
			a.mu.Lock()
			a.waiters.push(w)
			a.mu.Unlock()
			a.evict(s)
			continue
		}

		a.deliver(w, s)
	}
}

// createSession starts a new session under the retry policy.
func (a *actor) createSession() (*Session, error) {
	var token string
	err := retry.Do(a.ctx, a.cfg.Retry, func(ctx context.Context) error {
		t, err := a.transport.StartSession(ctx, a.ledger)
		if err != nil {
			return err
		}
		if t == "" {
			return qldberrors.ErrNoSessionToken
		}
		token = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewSession(token), nil
}

// evict closes a session remotely under the retry policy. The active
// count is decremented whatever the outcome: local bookkeeping trusts
// the close attempt, and an unkillable remote session is abandoned.
func (a *actor) evict(s *Session) {
	err := retry.Do(a.ctx, a.cfg.Retry, func(ctx context.Context) error {
		return a.transport.EndSession(ctx, s.Token())
	})
	if err != nil {
		a.abandoned.Add(1)
		PoolEvictionsAbandoned.Inc()
		log.WithError(err).WithField("ledger", a.ledger).Warn("abandoning session after failed close")
	}

	a.mu.Lock()
	a.active--
	a.mu.Unlock()
	a.evicted.Add(1)
	PoolEvictedTotal.Inc()
}
