package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"adscribe/internal/api"
	"adscribe/internal/ipc"
	"adscribe/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the analysis queue",
	}

	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueDescribeCommand(ctx))
	queueCmd.AddCommand(newQueueStopCommand(ctx))
	queueCmd.AddCommand(newQueueRemoveCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newQueueResetCommand(ctx))
	queueCmd.AddCommand(newQueueRetryCommand(ctx))
	queueCmd.AddCommand(newQueueHealthCommand(ctx))

	return queueCmd
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show queue status summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				stats := make(map[string]int)
				if client != nil {
					status, err := client.Status()
					if err != nil {
						return err
					}
					stats = status.QueueStats
				} else {
					raw, err := store.Stats(cmd.Context())
					if err != nil {
						return err
					}
					for status, count := range raw {
						stats[string(status)] = count
					}
				}

				rows := buildQueueStatusRows(stats)
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Status", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var listStatuses []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queue items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var items []api.QueueItem
				if client != nil {
					resp, err := client.QueueList(listStatuses)
					if err != nil {
						return err
					}
					items = resp.Items
				} else {
					statuses, err := api.ParseStatuses(listStatuses)
					if err != nil {
						return err
					}
					records, err := store.List(cmd.Context(), statuses...)
					if err != nil {
						return err
					}
					items = api.FromQueueItems(records)
				}

				if asJSON {
					return writeJSON(cmd, api.QueueListResponse{Items: items})
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Page", "Status", "Progress", "Ads", "Created"},
					buildQueueListRows(items),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&listStatuses, "status", "s", nil, "Filter by queue status (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newQueueDescribeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe <id>",
		Short: "Show details for a queue item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var item api.QueueItem
				if client != nil {
					resp, err := client.QueueDescribe(id)
					if err != nil {
						return err
					}
					item = resp.Item
				} else {
					record, err := store.GetByID(cmd.Context(), id)
					if err != nil {
						return err
					}
					if record == nil {
						return fmt.Errorf("queue item %d not found", id)
					}
					item = api.FromQueueItem(record)
				}

				if asJSON {
					return writeJSON(cmd, api.QueueItemResponse{Item: item})
				}
				printQueueItemDetail(cmd, item)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newQueueStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <id>",
		Short: "Stop an in-flight queue item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.QueueStop(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Item %d stopped and parked for review\n", resp.Item.ID)
				return nil
			})
		},
	}
}

func newQueueRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a queue item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var removed bool
				if client != nil {
					resp, err := client.QueueRemove(id)
					if err != nil {
						return err
					}
					removed = resp.Removed
				} else {
					var err error
					removed, err = store.Remove(cmd.Context(), id)
					if err != nil {
						return err
					}
				}
				if removed {
					fmt.Fprintf(cmd.OutOrStdout(), "Item %d removed\n", id)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Item %d not found\n", id)
				}
				return nil
			})
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var clearCompleted bool
	var clearFailed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove queue items",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearCompleted && clearFailed {
				return errors.New("specify only one of --completed or --failed")
			}
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				out := cmd.OutOrStdout()
				var removed int64
				var label string
				var err error

				switch {
				case clearCompleted:
					label = "completed items"
					if client != nil {
						var resp *ipc.QueueClearCompletedResponse
						if resp, err = client.QueueClearCompleted(); err == nil {
							removed = resp.Removed
						}
					} else {
						removed, err = store.ClearCompleted(cmd.Context())
					}
				case clearFailed:
					label = "failed items"
					if client != nil {
						var resp *ipc.QueueClearFailedResponse
						if resp, err = client.QueueClearFailed(); err == nil {
							removed = resp.Removed
						}
					} else {
						removed, err = store.ClearFailed(cmd.Context())
					}
				default:
					label = "queue items"
					if client != nil {
						var resp *ipc.QueueClearResponse
						if resp, err = client.QueueClear(); err == nil {
							removed = resp.Removed
						}
					} else {
						removed, err = store.Clear(cmd.Context())
					}
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Cleared %d %s\n", removed, label)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearCompleted, "completed", false, "Only remove completed items")
	cmd.Flags().BoolVar(&clearFailed, "failed", false, "Only remove failed items")
	return cmd
}

func newQueueResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Roll stuck in-flight items back to the start of their stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var reset int64
				var err error
				if client != nil {
					var resp *ipc.QueueResetResponse
					if resp, err = client.QueueReset(); err == nil {
						reset = resp.Reset
					}
				} else {
					reset, err = store.ResetStuckProcessing(cmd.Context())
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d stuck items\n", reset)
				return nil
			})
		},
	}
}

func newQueueRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry [id...]",
		Short: "Retry failed items (all failed items when no IDs are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseItemIDs(args)
			if err != nil {
				return err
			}
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				var retried int64
				if client != nil {
					resp, err := client.QueueRetry(ids)
					if err != nil {
						return err
					}
					retried = resp.Retried
				} else {
					var err error
					retried, err = store.RetryFailed(cmd.Context(), ids...)
					if err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d items for retry\n", retried)
				return nil
			})
		},
	}
}

func newQueueHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show queue database diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(client *ipc.Client, store *queue.Store) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				var summary queue.HealthSummary
				var db queue.DatabaseHealth
				if client != nil {
					healthResp, err := client.QueueHealth()
					if err != nil {
						return err
					}
					summary = queue.HealthSummary{
						Total:      healthResp.Total,
						Pending:    healthResp.Pending,
						Processing: healthResp.Processing,
						Failed:     healthResp.Failed,
						Review:     healthResp.Review,
						Completed:  healthResp.Completed,
					}
					dbResp, err := client.DatabaseHealth()
					if err != nil {
						return err
					}
					db = queue.DatabaseHealth{
						DBPath:           dbResp.DBPath,
						DatabaseExists:   dbResp.DatabaseExists,
						DatabaseReadable: dbResp.DatabaseReadable,
						SchemaVersion:    dbResp.SchemaVersion,
						TableExists:      dbResp.TableExists,
						IntegrityCheck:   dbResp.IntegrityCheck,
						TotalItems:       dbResp.TotalItems,
						Error:            dbResp.Error,
					}
				} else {
					var err error
					summary, err = store.Health(cmd.Context())
					if err != nil {
						return err
					}
					db, err = store.CheckHealth(cmd.Context())
					if err != nil {
						return err
					}
				}

				for _, line := range renderSectionHeader("Queue Health", colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Total", "Pending", "Processing", "Failed", "Review", "Completed"},
					[][]string{{
						strconv.Itoa(summary.Total),
						strconv.Itoa(summary.Pending),
						strconv.Itoa(summary.Processing),
						strconv.Itoa(summary.Failed),
						strconv.Itoa(summary.Review),
						strconv.Itoa(summary.Completed),
					}},
					[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
				))

				kind := statusOK
				detail := fmt.Sprintf("%s (%d items)", db.DBPath, db.TotalItems)
				if db.Error != "" || !db.DatabaseReadable || !db.IntegrityCheck {
					kind = statusError
					if db.Error != "" {
						detail = db.Error
					}
				}
				fmt.Fprintln(out, renderStatusLine("Database", kind, detail, colorize))
				return nil
			})
		},
	}
}

func parseItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}
	return id, nil
}

func parseItemIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseItemID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
