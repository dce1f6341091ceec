package testutil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockTransportTokensAreUnique(t *testing.T) {
	m := NewMockTransport()

	t1, err := m.StartSession(context.Background(), "ledger")
	if err != nil {
		t.Fatalf("StartSession = %v", err)
	}
	t2, err := m.StartSession(context.Background(), "ledger")
	if err != nil {
		t.Fatalf("StartSession = %v", err)
	}
	if t1 == t2 {
		t.Errorf("tokens %q and %q should differ", t1, t2)
	}
	if m.StartCalls() != 2 {
		t.Errorf("StartCalls() = %d, want 2", m.StartCalls())
	}
}

func TestMockTransportScript(t *testing.T) {
	m := NewMockTransport()
	scripted := errors.New("scripted failure")
	m.ScriptStartErrors(scripted, nil)

	if _, err := m.StartSession(context.Background(), "ledger"); !errors.Is(err, scripted) {
		t.Fatalf("first StartSession = %v, want scripted failure", err)
	}
	if _, err := m.StartSession(context.Background(), "ledger"); err != nil {
		t.Fatalf("second StartSession = %v, want success", err)
	}
	// Script exhausted: subsequent calls succeed.
	if _, err := m.StartSession(context.Background(), "ledger"); err != nil {
		t.Fatalf("third StartSession = %v, want success", err)
	}
}

func TestMockTransportRecordsEnds(t *testing.T) {
	m := NewMockTransport()
	token, _ := m.StartSession(context.Background(), "ledger")

	if err := m.EndSession(context.Background(), token); err != nil {
		t.Fatalf("EndSession = %v", err)
	}
	ended := m.Ended()
	if len(ended) != 1 || ended[0] != token {
		t.Errorf("Ended() = %v, want [%s]", ended, token)
	}
}

func TestMockTransportLatencyHonorsContext(t *testing.T) {
	m := NewMockTransport()
	m.SetLatency(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := m.StartSession(ctx, "ledger")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("StartSession = %v, want deadline exceeded", err)
	}
	if time.Since(start) > time.Second {
		t.Error("StartSession did not honor context cancellation")
	}
}

func TestSimTransportLiveTracking(t *testing.T) {
	s := NewSimTransport(0, 0)

	tok, err := s.StartSession(context.Background(), "ledger")
	if err != nil {
		t.Fatalf("StartSession = %v", err)
	}
	if s.Live() != 1 {
		t.Errorf("Live() = %d, want 1", s.Live())
	}
	if err := s.EndSession(context.Background(), tok); err != nil {
		t.Fatalf("EndSession = %v", err)
	}
	if s.Live() != 0 {
		t.Errorf("Live() = %d, want 0", s.Live())
	}
}

func TestSimTransportAlwaysFailing(t *testing.T) {
	s := NewSimTransport(0, 1.0)
	if _, err := s.StartSession(context.Background(), "ledger"); err == nil {
		t.Error("StartSession should fail with failureRate 1.0")
	}
}
