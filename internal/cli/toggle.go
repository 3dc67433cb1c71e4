package cli

import "github.com/spf13/cobra"

func newToggleCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Turn the lamp off if it is on, on otherwise",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.load()
			if err != nil {
				return err
			}

			report(cmd.OutOrStdout(), app.Lamp.Toggle(cmd.Context()), "State toggled")
			return nil
		},
	}
}
