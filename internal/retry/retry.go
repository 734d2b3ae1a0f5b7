// Package retry provides a bounded retry combinator with exponential
// backoff. The policy and the fallible operation are both explicit
// arguments, so call sites document their own resilience.
package retry

import (
	"fmt"
	"time"
)

// Policy bounds a retried operation.
type Policy struct {
	// InitialBackoff is the sleep before the second attempt.
	InitialBackoff time.Duration
	// MaxBackoff caps the per-attempt sleep as the backoff doubles.
	MaxBackoff time.Duration
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
}

// DefaultPolicy matches the asset store's tolerance for transient
// filesystem contention: 100ms initial backoff doubling up to 1s,
// 10 attempts total.
func DefaultPolicy() Policy {
	return Policy{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		MaxAttempts:    10,
	}
}

// Do runs op until it succeeds or the policy is exhausted, sleeping with
// exponential backoff between attempts. The last error is returned when
// all attempts fail.
func Do(p Policy, op func() error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	backoff := p.InitialBackoff
	var err error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}

		if attempt < p.MaxAttempts {
			time.Sleep(backoff)
			backoff *= 2
			if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
				backoff = p.MaxBackoff
			}
		}
	}

	return fmt.Errorf("giving up after %d attempts: %w", p.MaxAttempts, err)
}
