package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"zinnia/config"
	"zinnia/internal/domain"
)

const usageHint = "valid commands: on [0-100], off, [0-100], routine"

type root struct {
	build      Builder
	configPath string
	logLevel   string
	app        *App
}

// NewRootCommand builds the zinnia command tree. build is called at most once,
// by the first command that needs the lamp.
func NewRootCommand(build Builder) *cobra.Command {
	r := &root{build: build}

	cmd := &cobra.Command{
		Use:   "zinnia [percent]",
		Short: "Control a Tuya smart bulb",
		Long: "Control a Tuya smart bulb through the Tuya cloud.\n\n" +
			"With a percent argument, sets the brightness. With no arguments, opens an interactive menu.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: r.runRoot,
	}

	cmd.PersistentFlags().StringVar(&r.configPath, "config", config.DefaultPath(), "path to config file")
	cmd.PersistentFlags().StringVar(&r.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newOnCommand(r),
		newOffCommand(r),
		newToggleCommand(r),
		newRoutineCommand(r),
		newStatusCommand(r),
		newInfoCommand(r),
		newVersionCommand(),
	)

	return cmd
}

func (r *root) load() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}

	app, err := r.build(r.configPath, r.logLevel)
	if err != nil {
		return nil, err
	}

	r.app = app
	return app, nil
}

func (r *root) runRoot(cmd *cobra.Command, args []string) error {
	app, err := r.load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return newMenu(app, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
	}

	percent, err := parsePercent(args[0])
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), usageHint)
		return nil
	}

	err = app.Lamp.SetBrightness(cmd.Context(), percent)
	report(cmd.OutOrStdout(), err, fmt.Sprintf("Brightness set to %d%%", percent))
	return nil
}

func parsePercent(s string) (int, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	percent, err := strconv.Atoi(s)
	if err != nil {
		return 0, &domain.InputError{Input: s}
	}
	return percent, nil
}
