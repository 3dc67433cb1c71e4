package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOnCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "on [percent]",
		Short: "Turn the lamp on, optionally at a brightness",
		Args:  cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				report(out, app.Lamp.TurnOn(cmd.Context()), "Lamp on")
				return nil
			}

			percent, err := parsePercent(args[0])
			if err != nil {
				fmt.Fprintln(out, "Please enter a numeric brightness value")
				return nil
			}

			report(out, app.Lamp.TurnOnAt(cmd.Context(), percent), fmt.Sprintf("Lamp on at %d%%", percent))
			return nil
		},
	}
}
