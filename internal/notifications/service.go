package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"adscribe/internal/config"
)

const userAgent = "Adscribe/0.1.0"

// Service defines the notification surface exposed to workflow components.
type Service interface {
	NotifyScanComplete(ctx context.Context, pageName string, adsFound int) error
	NotifyTranscriptionComplete(ctx context.Context, pageName string, transcribed, total int) error
	NotifyReportReady(ctx context.Context, pageName, reportPath string) error
	NotifyQueueStarted(ctx context.Context, count int) error
	NotifyQueueCompleted(ctx context.Context, processed, failed int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, context string) error
	NotifyReviewRequired(ctx context.Context, pageName, reason string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		scan:     cfg.Notifications.Scan,
		report:   cfg.Notifications.Report,
		queue:    cfg.Notifications.Queue,
		errors:   cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	scan     bool
	report   bool
	queue    bool
	errors   bool
}

func (n *ntfyService) NotifyScanComplete(ctx context.Context, pageName string, adsFound int) error {
	if !n.scan {
		return nil
	}
	pageName = strings.TrimSpace(pageName)
	data := payload{
		title:   "Adscribe - Scan Complete",
		message: fmt.Sprintf("Found %d video ads for %s", adsFound, pageName),
		tags:    []string{"adscribe", "scan", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyTranscriptionComplete(ctx context.Context, pageName string, transcribed, total int) error {
	if !n.scan {
		return nil
	}
	pageName = strings.TrimSpace(pageName)
	data := payload{
		title:   "Adscribe - Transcription Complete",
		message: fmt.Sprintf("Transcribed %d of %d ads for %s", transcribed, total, pageName),
		tags:    []string{"adscribe", "transcribe", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyReportReady(ctx context.Context, pageName, reportPath string) error {
	if !n.report {
		return nil
	}
	pageName = strings.TrimSpace(pageName)
	reportPath = strings.TrimSpace(reportPath)
	message := fmt.Sprintf("Report ready: %s", pageName)
	if reportPath != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, reportPath)
	}
	data := payload{
		title:    "Adscribe - Report Ready",
		message:  message,
		tags:     []string{"adscribe", "report", "ready"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyQueueStarted(ctx context.Context, count int) error {
	if !n.queue {
		return nil
	}
	data := payload{
		title:   "Adscribe - Queue Started",
		message: fmt.Sprintf("Started processing queue with %d items", count),
		tags:    []string{"adscribe", "queue", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyQueueCompleted(ctx context.Context, processed, failed int, duration time.Duration) error {
	if !n.queue {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	var title, message string
	if failed == 0 {
		title = "Adscribe - Queue Complete"
		message = fmt.Sprintf("Queue processing complete: %d items processed in %s", processed, durationText)
	} else {
		title = "Adscribe - Queue Complete (with errors)"
		message = fmt.Sprintf("Queue processing complete: %d succeeded, %d failed in %s", processed, failed, durationText)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"adscribe", "queue", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Adscribe - Error",
		message:  builder.String(),
		tags:     []string{"adscribe", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyReviewRequired(ctx context.Context, pageName, reason string) error {
	if !n.errors {
		return nil
	}
	pageName = strings.TrimSpace(pageName)
	reason = strings.TrimSpace(reason)
	data := payload{
		title:   "Adscribe - Review Required",
		message: fmt.Sprintf("Needs attention: %s\n%s", pageName, reason),
		tags:    []string{"adscribe", "review"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Adscribe - Test",
		message:  "Notification system test",
		tags:     []string{"adscribe", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScanComplete(context.Context, string, int) error               { return nil }
func (noopService) NotifyTranscriptionComplete(context.Context, string, int, int) error { return nil }
func (noopService) NotifyReportReady(context.Context, string, string) error             { return nil }
func (noopService) NotifyQueueStarted(context.Context, int) error                       { return nil }
func (noopService) NotifyQueueCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error                    { return nil }
func (noopService) NotifyReviewRequired(context.Context, string, string) error          { return nil }
func (noopService) TestNotification(context.Context) error                              { return nil }
