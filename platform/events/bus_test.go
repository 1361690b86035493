package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"skrytki/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.happened" }

func TestPublishSyncRunsAllHandlersAndJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var calls int32
	boom := errors.New("boom")

	bus.Subscribe("test.happened", HandlerFunc(func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return boom
	}))
	bus.Subscribe("test.happened", HandlerFunc(func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}))
	bus.Subscribe("other", HandlerFunc(func(context.Context, Event) error {
		t.Fatal("handler of another event must not run")
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})

	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to contain boom, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls)
	}
}

func TestPublishIsAsyncAndSurvivesCancellation(t *testing.T) {
	bus := NewInMemoryBus(nil)
	var handled int32

	bus.Subscribe("test.happened", HandlerFunc(func(ctx context.Context, _ Event) error {
		if ctx.Err() != nil {
			t.Error("expected handler context not to be canceled")
		}
		atomic.AddInt32(&handled, 1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{BaseEvent: NewBaseEvent()})
	bus.Wait()

	if atomic.LoadInt32(&handled) != 1 {
		t.Fatalf("expected 1 handled event, got %d", handled)
	}
}
