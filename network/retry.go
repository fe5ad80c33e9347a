package network

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrDeliveryFailure is returned when a message could not reach its target
// within the retry window.
var ErrDeliveryFailure = errors.New("delivery failure")

// RetryPolicy bounds how long a send keeps trying. The wait between two
// attempts starts at Backoff and doubles up to MaxWait.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
	MaxWait  time.Duration
}

// DefaultRetryPolicy gives up after four attempts, 10ms to 40ms apart.
var DefaultRetryPolicy = RetryPolicy{
	Attempts: 4,
	Backoff:  10 * time.Millisecond,
	MaxWait:  40 * time.Millisecond,
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.Backoff
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = max(p.MaxWait, p.Backoff)
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(p.Attempts, 1)-1)), ctx)
}

// Do calls try until it succeeds or the attempts are exhausted. A cancelled
// context stops the loop and its error is returned as is.
func (p RetryPolicy) Do(ctx context.Context, try func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		return try()
	}, p.backOff(ctx))
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("%w after %d attempts: %w", ErrDeliveryFailure, attempts, err)
	}
}
