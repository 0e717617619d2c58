package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"adscribe/internal/ipc"
	"adscribe/internal/services/adslibrary"
)

// newAnalyzeCommand enqueues a page for the full scan/transcribe/report
// pipeline via the daemon.
func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "analyze <page-url-or-id>",
		Short: "Queue a Facebook page for ad script analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageRef := strings.TrimSpace(args[0])
			if _, err := adslibrary.ParsePageRef(pageRef); err != nil {
				return err
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Analyze(pageRef, language)
				if err != nil {
					return fmt.Errorf("queue analysis: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Queued item %d for analysis\n", resp.Item.ID)
				if resp.Item.PageID != "" {
					fmt.Fprintf(out, "Page ID: %s\n", resp.Item.PageID)
				}
				fmt.Fprintln(out, "Track progress with `adscribe queue list` or `adscribe show -f`")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Transcription language (defaults to the configured language)")
	return cmd
}
