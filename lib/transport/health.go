package transport

import (
	"context"
	"sync"
	"time"
)

// HealthConfig configures the health monitor.
type HealthConfig struct {
	// CheckInterval is how often to probe the ledger endpoint.
	CheckInterval time.Duration
	// Timeout is the timeout for a single probe.
	Timeout time.Duration
	// FailureThreshold is how many consecutive probe failures mark the
	// endpoint unhealthy.
	FailureThreshold int
}

// DefaultHealthConfig returns sensible defaults.
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		CheckInterval:    30 * time.Second,
		Timeout:          5 * time.Second,
		FailureThreshold: 3,
	}
}

// HealthState represents the health state of the ledger endpoint.
type HealthState int

const (
	// HealthStateUnknown is the initial state.
	HealthStateUnknown HealthState = iota
	// HealthStateHealthy means the endpoint is responding.
	HealthStateHealthy
	// HealthStateUnhealthy means probes are failing.
	HealthStateUnhealthy
)

func (s HealthState) String() string {
	switch s {
	case HealthStateUnknown:
		return "unknown"
	case HealthStateHealthy:
		return "healthy"
	case HealthStateUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// ProbeFunc checks the ledger endpoint. A typical probe starts and
// immediately ends a throwaway session.
type ProbeFunc func(ctx context.Context) error

// HealthMonitor periodically probes the ledger endpoint and reports
// state transitions through callbacks.
type HealthMonitor struct {
	mu     sync.Mutex
	config HealthConfig
	probe  ProbeFunc

	state            HealthState
	lastCheck        time.Time
	lastHealthy      time.Time
	consecutiveFails int

	onHealthy   func()
	onUnhealthy func()

	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewHealthMonitor creates a monitor for the given probe.
func NewHealthMonitor(probe ProbeFunc, cfg HealthConfig) *HealthMonitor {
	def := DefaultHealthConfig()
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = def.CheckInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}

	return &HealthMonitor{
		config: cfg,
		probe:  probe,
		state:  HealthStateUnknown,
	}
}

// SetCallbacks registers callbacks for health transitions. Must be
// called before Start.
func (m *HealthMonitor) SetCallbacks(onHealthy, onUnhealthy func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onHealthy = onHealthy
	m.onUnhealthy = onUnhealthy
}

// Start begins periodic probing. It runs one probe immediately.
func (m *HealthMonitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.loop()
}

// Stop halts probing and waits for the monitor goroutine to exit.
func (m *HealthMonitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stop)
	m.mu.Unlock()

	<-m.done
}

// State returns the current health state.
func (m *HealthMonitor) State() HealthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastHealthy returns when the endpoint last passed a probe.
func (m *HealthMonitor) LastHealthy() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastHealthy
}

func (m *HealthMonitor) loop() {
	defer close(m.done)

	m.check()

	ticker := time.NewTicker(m.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.check()
		}
	}
}

func (m *HealthMonitor) check() {
	HealthChecksTotal.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), m.config.Timeout)
	err := m.probe(ctx)
	cancel()

	m.mu.Lock()
	m.lastCheck = time.Now()

	if err == nil {
		m.consecutiveFails = 0
		m.lastHealthy = m.lastCheck
		transitioned := m.state != HealthStateHealthy
		m.state = HealthStateHealthy
		cb := m.onHealthy
		m.mu.Unlock()

		TransportHealthy.Set(1)
		if transitioned {
			log.Info("ledger endpoint healthy")
			if cb != nil {
				cb()
			}
		}
		return
	}

	m.consecutiveFails++
	fails := m.consecutiveFails
	transitioned := fails == m.config.FailureThreshold && m.state != HealthStateUnhealthy
	if fails >= m.config.FailureThreshold {
		m.state = HealthStateUnhealthy
	}
	cb := m.onUnhealthy
	m.mu.Unlock()

	log.WithError(err).WithField("consecutiveFails", fails).Debug("health probe failed")
	if transitioned {
		TransportHealthy.Set(0)
		log.WithError(err).Warn("ledger endpoint unhealthy")
		if cb != nil {
			cb()
		}
	}
}
