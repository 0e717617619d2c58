package main

import (
	"github.com/spf13/cobra"

	"adscribe/internal/daemonrun"
)

// newDaemonRunCommand runs the daemon in the foreground. `adscribe start`
// launches this command as a detached process.
func newDaemonRunCommand(ctx *commandContext) *cobra.Command {
	var logLevel string
	var development bool

	cmd := &cobra.Command{
		Use:    "daemon",
		Short:  "Run the adscribe daemon in the foreground",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if logLevel == "" {
				logLevel = cfg.Logging.Level
			}
			return daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{
				LogLevel:    logLevel,
				Development: development,
			})
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	cmd.Flags().BoolVar(&development, "development", false, "Enable development logging output")
	return cmd
}
