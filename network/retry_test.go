package network

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	policy := RetryPolicy{Attempts: 5, Backoff: time.Millisecond, MaxWait: 2 * time.Millisecond}
	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, %d done", calls)
	}
}

func TestRetryGivesUp(t *testing.T) {
	policy := RetryPolicy{Attempts: 3, Backoff: time.Millisecond}
	cause := errors.New("unreachable")
	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return cause
	})
	if !errors.Is(err, ErrDeliveryFailure) {
		t.Fatalf("expected ErrDeliveryFailure, %v returned", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected the last error to be wrapped, %v returned", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, %d done", calls)
	}
}

func TestRetryZeroAttemptsTriesOnce(t *testing.T) {
	calls := 0
	err := RetryPolicy{}.Do(context.Background(), func() error {
		calls++
		return errors.New("down")
	})
	if !errors.Is(err, ErrDeliveryFailure) || calls != 1 {
		t.Fatalf("expected one failed call, %d calls and %v", calls, err)
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{Attempts: 100, Backoff: time.Hour}
	done := make(chan error, 1)
	go func() {
		done <- policy.Do(ctx, func() error { return errors.New("down") })
	}()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, %v returned", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("retry loop ignored the cancelled context")
	}
}

func TestRetryWaitsBetweenAttempts(t *testing.T) {
	policy := RetryPolicy{Attempts: 3, Backoff: 20 * time.Millisecond, MaxWait: 20 * time.Millisecond}
	start := time.Now()
	err := policy.Do(context.Background(), func() error { return errors.New("down") })
	if !errors.Is(err, ErrDeliveryFailure) {
		t.Fatalf("expected ErrDeliveryFailure, %v returned", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected two waits of 20ms, returned after %v", elapsed)
	}
}
