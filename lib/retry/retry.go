// Package retry implements the retry policy shared by session creation
// and session eviction: a bounded number of attempts with quadratic
// backoff, short-circuited by unrecoverable errors.
package retry

import (
	"context"
	"fmt"
	"time"

	qldberrors "github.com/matthwyatt/qldb-go/lib/errors"
)

// Default policy values.
const (
	DefaultMaxAttempts = 10
	DefaultBaseDelay   = 75 * time.Millisecond
)

// Policy configures the retry loop.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay scales the backoff: the delay after attempt n is
	// n² × BaseDelay. There is no delay before the first attempt.
	BaseDelay time.Duration
}

// DefaultPolicy returns the policy used against the ledger service:
// 10 attempts, 75ms base delay.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
	}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	return p
}

// Delay returns the backoff delay between attempt n and attempt n+1.
func (p Policy) Delay(attempt int) time.Duration {
	return time.Duration(attempt*attempt) * p.BaseDelay
}

// Do runs op until it succeeds, returns an unrecoverable error, the
// attempt budget runs out, or ctx ends during a backoff wait.
//
// Unrecoverable errors (see lib/errors.Classify) are returned
// immediately with no further attempts and no delay. When the budget is
// exhausted the last error is wrapped in ErrRetriesExhausted.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	p = p.normalized()

	var err error
	for attempt := 1; ; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}
		if qldberrors.Classify(err) == qldberrors.ClassUnrecoverable {
			return err
		}
		if attempt >= p.MaxAttempts {
			return fmt.Errorf("%w (%d attempts): %w", qldberrors.ErrRetriesExhausted, p.MaxAttempts, err)
		}

		timer := time.NewTimer(p.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
