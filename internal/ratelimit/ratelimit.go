// Package ratelimit bounds the rate of operation starts against the chat
// transport. Admission follows a trailing window: each admitted call consumes
// a token that only becomes available again one full period later, so no
// trailing window of the configured period ever sees more than rate
// admissions.
package ratelimit

import (
	"context"
	"time"
)

// Limiter admits at most rate operations per trailing period. Waiting
// callers are admitted in FIFO order.
type Limiter struct {
	tokens chan struct{}
	period time.Duration
}

// New creates a limiter admitting rate operations per period. A rate below 1
// is treated as 1.
func New(rate int, period time.Duration) *Limiter {
	if rate < 1 {
		rate = 1
	}
	l := &Limiter{
		tokens: make(chan struct{}, rate),
		period: period,
	}
	for i := 0; i < rate; i++ {
		l.tokens <- struct{}{}
	}
	return l
}

// Acquire blocks until admitting the caller would not exceed the configured
// rate within the trailing period, or until ctx is cancelled. Goroutines
// blocked on the token channel are served in arrival order.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case <-l.tokens:
	case <-ctx.Done():
		return ctx.Err()
	}
	time.AfterFunc(l.period, func() {
		l.tokens <- struct{}{}
	})
	return nil
}
