package pool

import "sync/atomic"

// poolCommand is the tagged union carried on the command channel, one
// instance per caller operation.
type poolCommand interface {
	poolCommand()
}

// requestCommand asks the worker for a session on behalf of a waiter.
type requestCommand struct {
	w *waiter
}

// returnCommand hands a checked-out session back to the worker.
type returnCommand struct {
	session *Session
}

func (requestCommand) poolCommand() {}
func (returnCommand) poolCommand()  {}

// waiter claim states.
const (
	waiterPending int32 = iota
	waiterDelivered
	waiterAbandoned
	waiterCollected
)

// waiter is one outstanding Get. The claim state guarantees the waiter
// is resolved exactly once even when a delivery races a caller giving
// up: whichever side wins the CAS owns the outcome, and the loser of a
// delivered-vs-cancelled race can still collect the session from ch.
type waiter struct {
	ch    chan *Session
	state atomic.Int32
}

func newWaiter() *waiter {
	return &waiter{ch: make(chan *Session, 1)}
}

// deliver attempts non-blocking delivery of s. It fails if the caller
// has already given up; the session is then still owned by the worker.
func (w *waiter) deliver(s *Session) bool {
	if !w.state.CompareAndSwap(waiterPending, waiterDelivered) {
		return false
	}
	w.ch <- s
	return true
}

// cancel marks the waiter abandoned. If a delivery claimed the waiter
// first, cancel waits for the session to land and returns it so the
// caller can hand it back to the pool.
func (w *waiter) cancel() (*Session, bool) {
	if w.state.CompareAndSwap(waiterPending, waiterAbandoned) {
		return nil, false
	}
	if w.state.CompareAndSwap(waiterDelivered, waiterCollected) {
		// deliver won the claim; its send is already in flight, so the
		// receive cannot block for long.
		return <-w.ch, true
	}
	return nil, false
}
