package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Dimmer interface {
	SetBrightness(ctx context.Context, percent int) error
}

type RampStep struct {
	Index   int
	Total   int
	Percent int
	Err     error
}

// Routine walks a Dimmer through a Ramp, pausing between steps.
type Routine struct {
	dimmer   Dimmer
	ramp     Ramp
	delay    time.Duration
	notifier Notifier
	logger   *slog.Logger
}

func NewRoutine(dimmer Dimmer, ramp Ramp, delay time.Duration, notifier Notifier, logger *slog.Logger) *Routine {
	if notifier == nil {
		notifier = &NoopNotifier{}
	}
	return &Routine{
		dimmer:   dimmer,
		ramp:     ramp,
		delay:    delay,
		notifier: notifier,
		logger:   logger,
	}
}

// Run blocks until the ramp completes or ctx is cancelled. A failed step is
// reported through progress and the sweep carries on; only cancellation and
// an invalid ramp end it early.
func (r *Routine) Run(ctx context.Context, progress func(RampStep)) error {
	if err := r.ramp.Validate(); err != nil {
		return fmt.Errorf("invalid ramp: %w", err)
	}

	total := r.ramp.Len()
	failed := 0
	index := 0

	r.logger.Info("starting brightness ramp",
		"start", r.ramp.Start,
		"end", r.ramp.End,
		"step", r.ramp.Step,
		"delay", r.delay,
	)

	for percent := range r.ramp.Percents() {
		if index > 0 {
			if err := sleep(ctx, r.delay); err != nil {
				r.logger.Warn("brightness ramp cancelled", "completed", index, "total", total)
				return err
			}
		}

		err := r.dimmer.SetBrightness(ctx, percent)
		if err != nil {
			failed++
		}
		index++

		if progress != nil {
			progress(RampStep{Index: index, Total: total, Percent: percent, Err: err})
		}
	}

	r.logger.Info("brightness ramp finished", "steps", total, "failed", failed)

	msg := fmt.Sprintf("Routine complete: %d steps", total)
	if failed > 0 {
		msg = fmt.Sprintf("Routine complete: %d of %d steps failed", failed, total)
	}
	if err := r.notifier.Notify(ctx, msg); err != nil {
		r.logger.Error("notifying routine result", "error", err)
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
