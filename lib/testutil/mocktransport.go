// Package testutil provides testing utilities for qldb-go: a scriptable
// mock transport for unit tests and a simulated transport for soak runs
// against a fake ledger.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockTransport is an in-memory transport with scriptable outcomes.
// Each StartSession consumes the next scripted error (nil means
// success); once the script is exhausted every call succeeds. It records
// all calls for assertions. Safe for concurrent use.
type MockTransport struct {
	mu sync.Mutex

	startScript []error
	endErr      error
	latency     time.Duration

	seq     int
	starts  int
	ledgers []string
	ended   []string
}

// NewMockTransport creates a mock transport where every call succeeds.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// ScriptStartErrors queues per-call results for StartSession. A nil
// entry means that call succeeds.
func (m *MockTransport) ScriptStartErrors(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startScript = append(m.startScript, errs...)
}

// SetEndError makes every EndSession call fail with err.
func (m *MockTransport) SetEndError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endErr = err
}

// SetLatency adds a fixed delay to every call.
func (m *MockTransport) SetLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency = d
}

// StartSession implements transport.Transport.
func (m *MockTransport) StartSession(ctx context.Context, ledgerName string) (string, error) {
	m.mu.Lock()
	m.starts++
	m.ledgers = append(m.ledgers, ledgerName)
	var err error
	if len(m.startScript) > 0 {
		err = m.startScript[0]
		m.startScript = m.startScript[1:]
	}
	latency := m.latency
	var token string
	if err == nil {
		m.seq++
		token = fmt.Sprintf("session-%04d", m.seq)
	}
	m.mu.Unlock()

	if latency > 0 {
		if waitErr := sleep(ctx, latency); waitErr != nil {
			return "", waitErr
		}
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// EndSession implements transport.Transport.
func (m *MockTransport) EndSession(ctx context.Context, sessionToken string) error {
	m.mu.Lock()
	err := m.endErr
	latency := m.latency
	if err == nil {
		m.ended = append(m.ended, sessionToken)
	}
	m.mu.Unlock()

	if latency > 0 {
		if waitErr := sleep(ctx, latency); waitErr != nil {
			return waitErr
		}
	}
	return err
}

// StartCalls returns how many times StartSession was invoked.
func (m *MockTransport) StartCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts
}

// Ledgers returns the ledger names passed to StartSession, in order.
func (m *MockTransport) Ledgers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ledgers...)
}

// Ended returns the tokens successfully passed to EndSession, in order.
func (m *MockTransport) Ended() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ended...)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
