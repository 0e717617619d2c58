package notifications

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"adscribe/internal/testsupport"
)

type captured struct {
	title    string
	tags     string
	priority string
	body     string
}

func newCaptureServer(t *testing.T) (*httptest.Server, func() []captured) {
	t.Helper()
	var mu sync.Mutex
	var requests []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []captured {
		mu.Lock()
		defer mu.Unlock()
		cp := make([]captured, len(requests))
		copy(cp, requests)
		return cp
	}
}

func TestNewServiceNoTopicIsNoop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Notifications.NtfyTopic = ""

	svc := NewService(cfg)
	if _, ok := svc.(noopService); !ok {
		t.Fatalf("expected noop service, got %T", svc)
	}
	if err := svc.NotifyScanComplete(context.Background(), "Acme", 3); err != nil {
		t.Fatalf("noop notify: %v", err)
	}
}

func TestNotifyScanComplete(t *testing.T) {
	srv, requests := newCaptureServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(srv.URL+"/adscribe"))
	cfg.Notifications.Scan = true

	svc := NewService(cfg)
	if err := svc.NotifyScanComplete(context.Background(), "Acme Tools", 7); err != nil {
		t.Fatalf("notify: %v", err)
	}

	got := requests()
	if len(got) != 1 {
		t.Fatalf("expected 1 request, got %d", len(got))
	}
	if got[0].title != "Adscribe - Scan Complete" {
		t.Fatalf("unexpected title: %q", got[0].title)
	}
	if got[0].body != "Found 7 video ads for Acme Tools" {
		t.Fatalf("unexpected body: %q", got[0].body)
	}
}

func TestCategoryTogglesSuppressSends(t *testing.T) {
	srv, requests := newCaptureServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(srv.URL+"/adscribe"))
	cfg.Notifications.Scan = false
	cfg.Notifications.Report = false
	cfg.Notifications.Queue = false
	cfg.Notifications.Errors = false

	svc := NewService(cfg)
	ctx := context.Background()
	if err := svc.NotifyScanComplete(ctx, "Acme", 1); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if err := svc.NotifyReportReady(ctx, "Acme", "/tmp/report.pdf"); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := svc.NotifyQueueStarted(ctx, 2); err != nil {
		t.Fatalf("queue: %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "scan"); err != nil {
		t.Fatalf("error: %v", err)
	}

	if got := requests(); len(got) != 0 {
		t.Fatalf("expected no requests with all categories disabled, got %d", len(got))
	}
}

func TestNotifyErrorPriority(t *testing.T) {
	srv, requests := newCaptureServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(srv.URL+"/adscribe"))
	cfg.Notifications.Errors = true

	svc := NewService(cfg)
	if err := svc.NotifyError(context.Background(), errors.New("scan blew up"), "scanning"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	got := requests()
	if len(got) != 1 {
		t.Fatalf("expected 1 request, got %d", len(got))
	}
	if got[0].priority != "high" {
		t.Fatalf("expected high priority, got %q", got[0].priority)
	}
	if got[0].body != "Error with scanning: scan blew up" {
		t.Fatalf("unexpected body: %q", got[0].body)
	}
}

func TestNotifyQueueCompletedFormatsDuration(t *testing.T) {
	srv, requests := newCaptureServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(srv.URL+"/adscribe"))
	cfg.Notifications.Queue = true

	svc := NewService(cfg)
	if err := svc.NotifyQueueCompleted(context.Background(), 3, 1, 90*time.Second); err != nil {
		t.Fatalf("notify: %v", err)
	}

	got := requests()
	if len(got) != 1 {
		t.Fatalf("expected 1 request, got %d", len(got))
	}
	want := "Queue processing complete: 3 succeeded, 1 failed in 1m30s"
	if got[0].body != want {
		t.Fatalf("body = %q, want %q", got[0].body, want)
	}
}

func TestTestNotificationIgnoresToggles(t *testing.T) {
	srv, requests := newCaptureServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(srv.URL+"/adscribe"))
	cfg.Notifications.Scan = false
	cfg.Notifications.Errors = false

	svc := NewService(cfg)
	if err := svc.TestNotification(context.Background()); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got := requests(); len(got) != 1 {
		t.Fatalf("expected test notification to send, got %d requests", len(got))
	}
}

func TestSendSurfacesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(srv.URL+"/adscribe"))
	svc := NewService(cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
