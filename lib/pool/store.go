package pool

// sessionQueue holds idle sessions in FIFO order: push at the tail, pop
// at the head, so the oldest created-or-returned session is served
// first. A session that fails delivery is requeued at the tail (the
// queue's entry position), keeping it available for later attempts.
type sessionQueue struct {
	items []*Session
}

func (q *sessionQueue) push(s *Session) {
	q.items = append(q.items, s)
}

// requeue returns a session whose delivery failed to the entry position.
func (q *sessionQueue) requeue(s *Session) {
	q.push(s)
}

func (q *sessionQueue) pop() (*Session, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	s := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return s, true
}

func (q *sessionQueue) len() int {
	return len(q.items)
}

// waiterQueue holds pending session requests in FIFO order. Each waiter
// leaves the queue exactly once: popped for delivery, where it is either
// fulfilled or found abandoned.
type waiterQueue struct {
	items []*waiter
}

func (q *waiterQueue) push(w *waiter) {
	q.items = append(q.items, w)
}

func (q *waiterQueue) pop() (*waiter, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	w := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return w, true
}

func (q *waiterQueue) len() int {
	return len(q.items)
}
