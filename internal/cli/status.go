package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"zinnia/internal/domain"
)

type statusResult struct {
	On         bool   `json:"on"`
	Brightness int    `json:"brightness_percent"`
	WorkMode   string `json:"work_mode,omitempty"`
}

func newStatusCommand(r *root) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the lamp is on and at what brightness",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			state, err := app.Lamp.Status(cmd.Context())
			if err != nil {
				report(out, err, "")
				return nil
			}

			if asJSON {
				b, err := json.MarshalIndent(statusResult{
					On:         state.On,
					Brightness: state.BrightnessPercent(),
					WorkMode:   state.WorkMode,
				}, "", "    ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}

			fmt.Fprintln(out, describeState(state))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the status as JSON")
	return cmd
}

func describeState(state domain.LampState) string {
	if !state.On {
		return "💡 Lamp is off"
	}
	s := fmt.Sprintf("💡 Lamp is on at %d%%", state.BrightnessPercent())
	if state.WorkMode != "" {
		s += fmt.Sprintf(" (%s mode)", state.WorkMode)
	}
	return s
}

func newInfoCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the device record held by the Tuya cloud",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			dev, err := app.Lamp.Info(cmd.Context())
			if err != nil {
				report(out, err, "")
				return nil
			}

			online := "offline"
			if dev.Online {
				online = "online"
			}
			fmt.Fprintf(out, "%s (%s)\n", dev.Name, dev.ID)
			fmt.Fprintf(out, "  product:  %s\n", dev.Product)
			fmt.Fprintf(out, "  category: %s (%s)\n", dev.Category, dev.Type)
			fmt.Fprintf(out, "  state:    %s\n", online)
			return nil
		},
	}
}
