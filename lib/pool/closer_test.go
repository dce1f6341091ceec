package pool

import (
	"sync"
	"testing"
	"time"
)

func TestCloserIdempotent(t *testing.T) {
	c := newCloser()
	if c.Closed() {
		t.Fatal("new closer already closed")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Close()
		}()
	}
	wg.Wait()

	if !c.Closed() {
		t.Error("closer not closed after Close")
	}
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Error("Done channel never closed")
	}
}
