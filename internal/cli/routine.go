package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"zinnia/internal/application"
)

func newRoutineCommand(r *root) *cobra.Command {
	var opts struct {
		start int
		end   int
		step  int
		delay time.Duration
	}

	cmd := &cobra.Command{
		Use:   "routine",
		Short: "Ramp the brightness up step by step, as a wake-up light",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.load()
			if err != nil {
				return err
			}

			ramp, delay := app.Ramp, app.Delay
			flags := cmd.Flags()
			if flags.Changed("start") {
				ramp.Start = opts.start
			}
			if flags.Changed("end") {
				ramp.End = opts.end
			}
			if flags.Changed("step") {
				ramp.Step = opts.step
			}
			if flags.Changed("delay") {
				delay = opts.delay
			}

			app.serveMetrics(cmd.Context())
			return runRoutine(cmd.Context(), app, ramp, delay, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&opts.start, "start", 10, "first brightness percent")
	cmd.Flags().IntVar(&opts.end, "end", 100, "last brightness percent")
	cmd.Flags().IntVar(&opts.step, "step", 10, "brightness increment in percent")
	cmd.Flags().DurationVar(&opts.delay, "delay", 10*time.Second, "pause between steps, eg. 30s or 1m")

	return cmd
}

// announcer prints each step before it is sent.
type announcer struct {
	application.Dimmer
	out io.Writer
}

func (a announcer) SetBrightness(ctx context.Context, percent int) error {
	fmt.Fprintf(a.out, "⏳ Setting brightness to %d%%...\n", percent)
	return a.Dimmer.SetBrightness(ctx, percent)
}

func runRoutine(ctx context.Context, app *App, ramp application.Ramp, delay time.Duration, out io.Writer) error {
	if err := ramp.Validate(); err != nil {
		fmt.Fprintf(out, "❌ Invalid routine: %v\n", err)
		return nil
	}

	fmt.Fprintln(out, "Starting morning routine...")

	routine := application.NewRoutine(announcer{Dimmer: app.Lamp, out: out}, ramp, delay, app.Notifier, app.Logger)
	err := routine.Run(ctx, func(step application.RampStep) {
		if step.Err != nil {
			report(out, step.Err, "")
		}
	})

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(out, "Routine cancelled")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintln(out, "✅ Routine complete!")
	return nil
}
