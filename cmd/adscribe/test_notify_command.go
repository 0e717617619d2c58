package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"adscribe/internal/ipc"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification through the configured ntfy topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				out := cmd.OutOrStdout()
				resp, err := client.TestNotification()
				if resp != nil && resp.Message != "" {
					fmt.Fprintln(out, resp.Message)
				}
				if err != nil {
					return err
				}
				if resp == nil || (!resp.Sent && resp.Message == "") {
					fmt.Fprintln(out, "Notification not sent")
					return nil
				}
				if resp.Sent && resp.Message == "" {
					fmt.Fprintln(out, "Test notification sent")
				}
				return nil
			})
		},
	}
}
