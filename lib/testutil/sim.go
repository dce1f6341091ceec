package testutil

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	qldberrors "github.com/matthwyatt/qldb-go/lib/errors"
)

// SimTransport simulates a ledger endpoint for soak runs: configurable
// latency and a random recoverable failure rate on session starts.
type SimTransport struct {
	latency     time.Duration
	failureRate float64

	mu   sync.Mutex
	rng  *rand.Rand
	seq  atomic.Uint64
	live atomic.Int64
}

// NewSimTransport creates a simulated transport. failureRate is the
// probability in [0,1) that a StartSession fails recoverably.
func NewSimTransport(latency time.Duration, failureRate float64) *SimTransport {
	return &SimTransport{
		latency:     latency,
		failureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartSession implements transport.Transport.
func (s *SimTransport) StartSession(ctx context.Context, ledgerName string) (string, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return "", err
	}

	s.mu.Lock()
	fail := s.rng.Float64() < s.failureRate
	s.mu.Unlock()
	if fail {
		return "", qldberrors.Recoverable(fmt.Errorf("simulated start failure on %s", ledgerName))
	}

	s.live.Add(1)
	return fmt.Sprintf("%s-session-%08d", ledgerName, s.seq.Add(1)), nil
}

// EndSession implements transport.Transport.
func (s *SimTransport) EndSession(ctx context.Context, sessionToken string) error {
	if err := sleep(ctx, s.latency/2); err != nil {
		return err
	}
	s.live.Add(-1)
	return nil
}

// Live returns the number of sessions started and not yet ended. The
// soak tool uses it to verify the pool never exceeds its ceiling.
func (s *SimTransport) Live() int64 {
	return s.live.Load()
}
