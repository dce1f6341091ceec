package pool

import "sync"

// closer is a one-shot shutdown signal shared between the facade and the
// worker loops. Close may be called any number of times from any
// goroutine; only the first call has an effect.
type closer struct {
	once sync.Once
	done chan struct{}
}

func newCloser() *closer {
	return &closer{done: make(chan struct{})}
}

// Close signals shutdown. Idempotent.
func (c *closer) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// Done returns a channel that is closed once shutdown is signaled.
func (c *closer) Done() <-chan struct{} {
	return c.done
}

// Closed reports whether shutdown has been signaled.
func (c *closer) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
