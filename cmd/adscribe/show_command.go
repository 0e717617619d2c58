package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"adscribe/internal/ipc"
)

// newShowCommand tails the daemon log through the IPC socket, so it shows
// the same file the daemon is writing regardless of where the CLI runs.
func newShowCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recent daemon log output",
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines <= 0 {
				lines = 40
			}
			return ctx.withClient(func(client *ipc.Client) error {
				out := cmd.OutOrStdout()

				resp, err := client.LogTail(ipc.LogTailRequest{Offset: -1, Limit: lines})
				if err != nil {
					return err
				}
				if len(resp.Lines) == 0 && !follow {
					fmt.Fprintln(out, "No log entries available")
					return nil
				}
				for _, line := range resp.Lines {
					fmt.Fprintln(out, line)
				}
				if !follow {
					return nil
				}

				offset := resp.Offset
				for {
					if err := cmd.Context().Err(); err != nil {
						return nil
					}
					resp, err := client.LogTail(ipc.LogTailRequest{
						Offset:     offset,
						Follow:     true,
						WaitMillis: 1000,
					})
					if err != nil {
						if errors.Is(err, context.Canceled) {
							return nil
						}
						return err
					}
					for _, line := range resp.Lines {
						fmt.Fprintln(out, line)
					}
					offset = resp.Offset
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep streaming new log lines")
	cmd.Flags().IntVarP(&lines, "lines", "n", 40, "Number of trailing lines to show")
	return cmd
}
