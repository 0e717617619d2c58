package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"adscribe/internal/logging"
	"adscribe/internal/setup"
)

// newSetupCommand provisions the tools adscribe depends on: ffmpeg, the
// managed yt-dlp binary, and on macOS Homebrew itself.
func newSetupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Install and verify external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:            "info",
				Format:           "console",
				OutputPaths:      []string{"stdout"},
				ErrorOutputPaths: []string{"stderr"},
			})
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			if err := setup.NewRunner(cfg, logger).Run(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Setup complete")
			return nil
		},
	}
}
