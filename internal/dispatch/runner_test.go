package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

func TestRunner_Run_FinishesInFlightSweepOnShutdown(t *testing.T) {
	var (
		startOnce sync.Once
		started   = make(chan struct{})
		release   = make(chan struct{})
	)

	d := newTestDispatcher(t, &Providers{
		Directory: &subscriber.StubService{
			ListSubscribedFunc: func(ctx context.Context) ([]subscriber.Subscriber, error) {
				startOnce.Do(func() { close(started) })
				<-release
				if ctx.Err() != nil {
					t.Error("sweep context canceled before the sweep finished")
				}
				return nil, nil
			},
		},
	}, time.Now())

	runner := NewRunner(d, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(runDone)
	}()

	<-started
	cancel()

	select {
	case <-runDone:
		t.Fatal("Run returned while a sweep was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	select {
	case <-runDone:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the sweep finished")
	}
}

func TestRunner_Run_StopsBeforeFirstSweep(t *testing.T) {
	d := newTestDispatcher(t, &Providers{
		Directory: &subscriber.StubService{
			ListSubscribedFunc: func(_ context.Context) ([]subscriber.Subscriber, error) {
				t.Error("sweep started after cancellation")
				return nil, nil
			},
		},
	}, time.Now())

	runner := NewRunner(d, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runDone := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(runDone)
	}()

	select {
	case <-runDone:
	case <-time.After(time.Second):
		t.Fatal("Run did not return for a canceled context")
	}
}

func TestNewRunner_DefaultInterval(t *testing.T) {
	runner := NewRunner(nil, 0)
	if runner.interval != time.Minute {
		t.Errorf("runner.interval = %v, want %v", runner.interval, time.Minute)
	}
}
