package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"adscribe/internal/api"
)

func writeJSON(cmd *cobra.Command, payload any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func buildQueueListRows(items []api.QueueItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			queueItemPageLabel(item),
			formatStatusLabel(item.Status),
			queueItemProgressLabel(item),
			queueItemAdsLabel(item),
			formatItemTimestamp(item.CreatedAt),
		})
	}
	return rows
}

func queueItemPageLabel(item api.QueueItem) string {
	if item.PageName != "" {
		return item.PageName
	}
	if item.PageID != "" {
		return item.PageID
	}
	return item.PageRef
}

func queueItemProgressLabel(item api.QueueItem) string {
	stage := strings.TrimSpace(item.Progress.Stage)
	if stage == "" {
		return ""
	}
	if item.Progress.Percent > 0 && item.Progress.Percent < 100 {
		return fmt.Sprintf("%s %.0f%%", stage, item.Progress.Percent)
	}
	return stage
}

func queueItemAdsLabel(item api.QueueItem) string {
	if item.AdsFound == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", item.AdsTranscribed, item.AdsFound)
}

func formatItemTimestamp(raw string) string {
	ts, err := time.Parse("2006-01-02T15:04:05.000Z07:00", raw)
	if err != nil {
		return raw
	}
	return ts.Local().Format("2006-01-02 15:04")
}

func printQueueItemDetail(cmd *cobra.Command, item api.QueueItem) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Item %d\n", item.ID)
	printDetailField(out, "Page", queueItemPageLabel(item))
	printDetailField(out, "Page ID", item.PageID)
	printDetailField(out, "Language", item.Language)
	printDetailField(out, "Status", formatStatusLabel(item.Status))
	printDetailField(out, "Lane", item.ProcessingLane)
	printDetailField(out, "Progress", queueItemProgressLabel(item))
	printDetailField(out, "Progress note", item.Progress.Message)
	printDetailField(out, "Ads", queueItemAdsLabel(item))
	printDetailField(out, "Report", item.ReportPath)
	printDetailField(out, "Item log", item.ItemLogPath)
	printDetailField(out, "Created", formatItemTimestamp(item.CreatedAt))
	printDetailField(out, "Updated", formatItemTimestamp(item.UpdatedAt))
	if item.NeedsReview {
		printDetailField(out, "Review", item.ReviewReason)
	}
	printDetailField(out, "Error", item.ErrorMessage)
}

func printDetailField(out io.Writer, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(out, "  %-14s %s\n", label+":", value)
}
