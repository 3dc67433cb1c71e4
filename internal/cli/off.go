package cli

import "github.com/spf13/cobra"

func newOffCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "off",
		Short: "Turn the lamp off",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.load()
			if err != nil {
				return err
			}

			report(cmd.OutOrStdout(), app.Lamp.TurnOff(cmd.Context()), "Lamp off")
			return nil
		},
	}
}
