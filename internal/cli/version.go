package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"zinnia/version"
)

type versionResult struct {
	Version string `json:"version"`
}

func newVersionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version number of the tool",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				b, err := json.MarshalIndent(versionResult{Version: version.Version}, "", "    ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}

			fmt.Fprintf(out, "zinnia version %s\n", version.Version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Return version as JSON")
	return cmd
}
