// Package retry implements the read-query retry policy used by the view
// layer's refresh commands.
//
// The policy is a table keyed by {error kind, operation kind}, not inline
// conditionals: only network-classified failures of read operations are
// retried, with exponential backoff and a hard attempt cap. Writes (login,
// logout, homework submission) are never retried; replaying a write that may
// have reached the backend is worse than surfacing the failure.
package retry

import (
	"context"
	"time"

	"github.com/satchelapp/satchel/internal/portal"
)

// Op distinguishes operations that are safe to replay from those that are
// not.
type Op int

const (
	// Read is an idempotent query; retrying it cannot change backend state.
	Read Op = iota
	// Write mutates backend state and is never retried.
	Write
)

const (
	defaultMaxRetries = 2
	baseDelay         = time.Second
	maxDelay          = 30 * time.Second
)

// policy is the full retry table. Kinds absent from the table never retry.
var policy = map[Op]map[portal.Kind]bool{
	Read: {
		portal.KindNetwork: true,
	},
	Write: {},
}

// Policy decides whether and when a failed call is retried.
type Policy struct {
	// MaxRetries caps retries per call; zero means the default of 2.
	MaxRetries int

	// sleep is replaceable for tests.
	sleep func(context.Context, time.Duration) error
}

// ShouldRetry reports whether attempt (zero-based, counting retries already
// made) should be followed by another try for this error and operation kind.
func (p Policy) ShouldRetry(err error, op Op, attempt int) bool {
	if err == nil {
		return false
	}
	max := p.MaxRetries
	if max <= 0 {
		max = defaultMaxRetries
	}
	if attempt >= max {
		return false
	}
	return policy[op][portal.KindOf(err)]
}

// Delay returns the backoff before retry number attempt (zero-based):
// 1s, 2s, 4s, ... capped at 30s.
func (p Policy) Delay(attempt int) time.Duration {
	delay := baseDelay << attempt
	if delay > maxDelay || delay <= 0 {
		return maxDelay
	}
	return delay
}

// Do runs fn, retrying per the policy. It returns fn's last error. Context
// cancellation stops the backoff wait immediately.
func (p Policy) Do(ctx context.Context, op Op, fn func(context.Context) error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !p.ShouldRetry(err, op, attempt) {
			return err
		}
		if err := sleep(ctx, p.Delay(attempt)); err != nil {
			return err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
