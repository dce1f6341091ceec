package ratelimit

import (
	"testing"
	"time"
)

func TestAllowConsumesBurst(t *testing.T) {
	l := New(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("Allow() #%d = false, want true within burst", i+1)
		}
	}
	if l.Allow() {
		t.Error("Allow() should reject once the burst is consumed")
	}
}

func TestRefill(t *testing.T) {
	l := New(100, 1)

	if !l.Allow() {
		t.Fatal("first Allow() should succeed")
	}
	if l.Allow() {
		t.Fatal("second Allow() should be rejected")
	}

	// At 100 tokens/s a token is back within ~10ms.
	time.Sleep(30 * time.Millisecond)
	if !l.Allow() {
		t.Error("Allow() should succeed after refill")
	}
}

func TestTokensCappedAtCapacity(t *testing.T) {
	l := New(1000, 5)
	time.Sleep(20 * time.Millisecond)

	if tokens := l.Tokens(); tokens > 5 {
		t.Errorf("Tokens() = %v, want at most capacity 5", tokens)
	}
}
