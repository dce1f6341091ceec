package pool

import "testing"

func TestSessionQueueFIFO(t *testing.T) {
	var q sessionQueue
	a := NewSession("session-a")
	b := NewSession("session-b")
	c := NewSession("session-c")
	q.push(a)
	q.push(b)
	q.push(c)

	if q.len() != 3 {
		t.Fatalf("len = %d, want 3", q.len())
	}
	for i, want := range []*Session{a, b, c} {
		got, ok := q.pop()
		if !ok || got != want {
			t.Fatalf("pop %d = %v, want %v", i, got, want)
		}
	}
	if _, ok := q.pop(); ok {
		t.Error("pop on empty queue reported ok")
	}
}

func TestSessionQueueRequeueGoesToTail(t *testing.T) {
	var q sessionQueue
	a := NewSession("session-a")
	b := NewSession("session-b")
	q.push(a)
	q.push(b)

	got, _ := q.pop()
	q.requeue(got)

	first, _ := q.pop()
	second, _ := q.pop()
	if first != b || second != a {
		t.Error("requeued session did not go to the tail")
	}
}

func TestWaiterQueueFIFO(t *testing.T) {
	var q waiterQueue
	w1 := newWaiter()
	w2 := newWaiter()
	q.push(w1)
	q.push(w2)

	got, ok := q.pop()
	if !ok || got != w1 {
		t.Error("pop did not return the oldest waiter")
	}
	if q.len() != 1 {
		t.Errorf("len = %d, want 1", q.len())
	}
}
