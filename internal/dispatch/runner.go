package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Runner drives the dispatcher on a fixed cadence. The first sweep is
// aligned to the next whole interval boundary so that exact "HH:MM"
// matching fires each slot exactly once.
type Runner struct {
	dispatcher *Dispatcher
	interval   time.Duration
	running    atomic.Bool
	inflight   sync.WaitGroup
}

func NewRunner(dispatcher *Dispatcher, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Runner{
		dispatcher: dispatcher,
		interval:   interval,
	}
}

// Run loops until ctx is canceled. A sweep that is already in flight when
// the context is canceled runs to completion before Run returns.
func (r *Runner) Run(ctx context.Context) {
	wait := time.Until(time.Now().Truncate(r.interval).Add(r.interval))
	slog.Info("sweeper started", "interval", r.interval, "first_sweep_in", wait)

	select {
	case <-ctx.Done():
		return
	case <-time.After(wait):
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("sweeper stopping, waiting for in-flight sweep")
			r.inflight.Wait()
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Runner) sweep(ctx context.Context) {
	// A sweep that outlives its interval must not overlap the next one
	// within this process; the tick is skipped instead.
	if !r.running.CompareAndSwap(false, true) {
		slog.Warn("previous sweep still running, skipping tick")
		return
	}

	// Detached from cancellation: once started, a sweep finishes even
	// during shutdown. Run blocks on the waitgroup instead.
	sweepCtx := context.WithoutCancel(ctx)

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		defer r.running.Store(false)

		start := time.Now()
		report := r.dispatcher.Sweep(sweepCtx)
		if report.Err != nil {
			slog.Error("sweep failed", "reason", report.Err, "duration", time.Since(start))
			return
		}
		slog.Info("sweep complete", "report", report, "duration", time.Since(start))
	}()
}
