// Package retry provides the bounded-attempt wrapper used around every
// external command invocation.
//
// Every failure is retried identically at a fixed delay; the pipeline
// deliberately does not classify transient vs permanent errors.
package retry

import (
	"context"
	"fmt"
	"time"
)

const DefaultDelay = 5 * time.Second

type Policy struct {
	MaxAttempts int
	Delay       time.Duration // fixed wait between attempts; DefaultDelay if zero
	OnRetry     func(attempt int, err error, delay time.Duration)
}

type Operation func() error

// Do runs op until it succeeds or MaxAttempts invocations have failed.
// It makes at most MaxAttempts calls and returns nil on the first success.
func Do(ctx context.Context, p Policy, op Operation) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	delay := p.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}

		if attempt == p.MaxAttempts {
			break
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err, delay)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		}
	}

	return fmt.Errorf("failed after %d attempt(s): %w", p.MaxAttempts, err)
}
