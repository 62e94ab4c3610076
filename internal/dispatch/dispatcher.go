package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/weatherlyhq/weatherly/internal/platform/identity"
	"github.com/weatherlyhq/weatherly/internal/platform/weather"
	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

// Directory is the subscriber store as seen by the dispatcher.
// subscriber.Service satisfies it.
type Directory interface {
	ListSubscribed(ctx context.Context) ([]subscriber.Subscriber, error)
	SetVerificationSent(ctx context.Context, email string) error
}

// Channel delivers a rendered message to one address.
type Channel interface {
	Send(to, subject, htmlBody string) error
}

// Outcome classifies the handling of a single record within a sweep.
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeVerificationTriggered
	OutcomePending
	OutcomeSkippedWrongTime
	OutcomeSkippedMalformed
	OutcomeFailed
)

// Report aggregates per-record outcomes of one sweep. Err is set only when
// the initial directory listing fails; per-record failures land in Failed.
type Report struct {
	Sent                  int
	VerificationTriggered int
	Pending               int
	SkippedWrongTime      int
	Failed                int
	Err                   error
}

func (r *Report) add(outcome Outcome) {
	switch outcome {
	case OutcomeSent:
		r.Sent++
	case OutcomeVerificationTriggered:
		r.VerificationTriggered++
	case OutcomePending:
		r.Pending++
	case OutcomeSkippedWrongTime:
		r.SkippedWrongTime++
	case OutcomeSkippedMalformed:
		// malformed records are skipped silently and not counted
	case OutcomeFailed:
		r.Failed++
	}
}

func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("sent", r.Sent),
		slog.Int("verification_triggered", r.VerificationTriggered),
		slog.Int("pending", r.Pending),
		slog.Int("skipped_wrong_time", r.SkippedWrongTime),
		slog.Int("failed", r.Failed),
	)
}

const defaultWorkers = 4

type Providers struct {
	Directory Directory
	Identity  identity.Service
	Weather   weather.Service
	Channel   Channel
	Renderer  *Renderer
}

// Dispatcher runs the notification sweep: for every subscribed record it
// either sends a weather report, triggers address verification, or leaves
// the record pending.
//
// Delivery slots are matched by exact "HH:MM" equality in the record's zone,
// so the sweep must be driven exactly once per minute: a coarser cadence
// misses slots, a finer one double-sends. Two dispatchers sweeping the same
// directory concurrently can also double-send; there is no cross-process
// lock.
type Dispatcher struct {
	directory Directory
	identity  identity.Service
	weather   weather.Service
	channel   Channel
	renderer  *Renderer
	fallback  *time.Location
	workers   int
	now       func() time.Time
}

func New(providers *Providers, fallback *time.Location, workers int) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Dispatcher{
		directory: providers.Directory,
		identity:  providers.Identity,
		weather:   providers.Weather,
		channel:   providers.Channel,
		renderer:  providers.Renderer,
		fallback:  fallback,
		workers:   workers,
		now:       time.Now,
	}
}

// Sweep processes every subscribed record once. It never returns an error:
// a failed listing is reported through Report.Err and per-record failures
// are isolated, so the caller needs no special-case handling.
func (d *Dispatcher) Sweep(ctx context.Context) Report {
	subs, err := d.directory.ListSubscribed(ctx)
	if err != nil {
		slog.Error("sweep aborted, directory listing failed", "reason", err)
		return Report{Err: fmt.Errorf("list subscribed: %w", err)}
	}

	if len(subs) == 0 {
		slog.Info("no subscribed users found")
		return Report{}
	}

	var (
		mu     sync.Mutex
		report Report
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for _, sub := range subs {
		g.Go(func() error {
			outcome := d.process(gctx, sub)
			mu.Lock()
			report.add(outcome)
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; failures are per-record outcomes.
	_ = g.Wait()

	return report
}

func (d *Dispatcher) process(ctx context.Context, sub subscriber.Subscriber) Outcome {
	if sub.Email == "" {
		slog.Debug("skipping record without email", "city", sub.City)
		return OutcomeSkippedMalformed
	}

	status, err := d.identity.Status(ctx, sub.Email)
	if err != nil {
		slog.Error("verification status check failed", "email", sub.Email, "reason", err)
		return OutcomeFailed
	}

	if status == identity.StatusVerified {
		return d.notify(ctx, sub)
	}

	if sub.VerificationSent {
		slog.Info("waiting for verification", "email", sub.Email)
		return OutcomePending
	}

	if err := d.identity.Verify(ctx, sub.Email); err != nil {
		slog.Error("trigger verification failed", "email", sub.Email, "reason", err)
		return OutcomeFailed
	}

	// Standalone write, not coordinated with the trigger above: a crash in
	// between re-triggers verification on the next sweep (at-least-once).
	if err := d.directory.SetVerificationSent(ctx, sub.Email); err != nil {
		slog.Error("flagging verification sent failed", "email", sub.Email, "reason", err)
		return OutcomeFailed
	}

	slog.Info("verification triggered", "email", sub.Email)
	return OutcomeVerificationTriggered
}

func (d *Dispatcher) notify(ctx context.Context, sub subscriber.Subscriber) Outcome {
	localNow := d.now().In(d.zoneFor(sub))
	if localNow.Format("15:04") != sub.PreferredTime {
		return OutcomeSkippedWrongTime
	}

	snapshot, err := d.weather.Current(ctx, sub.City)
	if err != nil {
		slog.Error("weather fetch failed", "email", sub.Email, "city", sub.City, "reason", err)
		return OutcomeFailed
	}

	subject, body, err := d.renderer.Render(sub.City, snapshot, localNow)
	if err != nil {
		slog.Error("rendering report failed", "email", sub.Email, "reason", err)
		return OutcomeFailed
	}

	if err := d.channel.Send(sub.Email, subject, body); err != nil {
		slog.Error("send failed", "email", sub.Email, "reason", err)
		return OutcomeFailed
	}

	slog.Info("weather update sent", "email", sub.Email, "city", sub.City)
	return OutcomeSent
}

func (d *Dispatcher) zoneFor(sub subscriber.Subscriber) *time.Location {
	if sub.Timezone == "" {
		return d.fallback
	}

	loc, err := time.LoadLocation(sub.Timezone)
	if err != nil {
		slog.Warn("unknown timezone, using fallback",
			"email", sub.Email, "timezone", sub.Timezone, "fallback", d.fallback)
		return d.fallback
	}
	return loc
}
