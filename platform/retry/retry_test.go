package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"skrytki/platform/logger"
)

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.Discard(), "op", 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDoGivesUp(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.Discard(), "database connection", 2, time.Millisecond, func() error {
		calls++
		return errors.New("connection refused")
	})
	if err == nil || err.Error() != "database connection: connection refused" {
		t.Fatalf("expected last error to be reported, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestDoStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, logger.Discard(), "op", 5, time.Hour, func() error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := Do(context.Background(), logger.Discard(), "op", 0, 0, func() error { return nil }); err == nil {
		t.Fatal("expected invalid attempts to fail")
	}
}
