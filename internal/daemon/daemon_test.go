package daemon_test

import (
	"context"
	"path/filepath"
	"testing"

	"adscribe/internal/daemon"
	"adscribe/internal/logging"
	"adscribe/internal/queue"
	"adscribe/internal/stage"
	"adscribe/internal/testsupport"
	"adscribe/internal/workflow"
)

type noopStage struct{ name string }

func (s noopStage) Prepare(_ context.Context, item *queue.Item) error {
	item.InitProgress(s.name, s.name+" started")
	return nil
}

func (s noopStage) Execute(_ context.Context, item *queue.Item) error {
	item.SetProgressComplete(s.name, s.name+" finished")
	return nil
}

func (s noopStage) HealthCheck(context.Context) stage.Health {
	return stage.Healthy(s.name)
}

func noopStages() workflow.StageSet {
	return workflow.StageSet{
		Scanner:     noopStage{name: "scanner"},
		Downloader:  noopStage{name: "downloader"},
		Transcriber: noopStage{name: "transcriber"},
		Analyzer:    noopStage{name: "analyzer"},
		Reporter:    noopStage{name: "reporter"},
	}
}

func newTestDaemon(t *testing.T) (*daemon.Daemon, *queue.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()
	mgr := workflow.NewManager(cfg, store, logger)
	mgr.ConfigureStages(noopStages())
	logPath := filepath.Join(cfg.Paths.LogDir, "adscribe.log")
	d, err := daemon.New(cfg, store, logger, mgr, logPath)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		_ = d.Close()
	})
	return d, store
}

func TestDaemonStartStop(t *testing.T) {
	d, _ := newTestDaemon(t)
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("second Start must fail while running")
	}

	status := d.Status(ctx)
	if !status.Running || !status.Workflow.Running {
		t.Fatalf("status = %+v", status)
	}
	if status.PID <= 0 {
		t.Errorf("pid = %d", status.PID)
	}
	if filepath.Base(status.QueueDBPath) != "queue.db" {
		t.Errorf("queue db path = %s", status.QueueDBPath)
	}

	d.Stop()
	if d.Status(ctx).Running {
		t.Fatal("daemon still reports running after Stop")
	}
}

func TestAddAnalysisValidatesPageRef(t *testing.T) {
	d, _ := newTestDaemon(t)
	ctx := context.Background()

	item, err := d.AddAnalysis(ctx, "https://www.facebook.com/ads/library/?view_all_page_id=123456789012345", "")
	if err != nil {
		t.Fatalf("AddAnalysis: %v", err)
	}
	if item.Status != queue.StatusPending {
		t.Errorf("status = %s", item.Status)
	}
	if item.Language != "en" {
		t.Errorf("language fallback = %s", item.Language)
	}

	if _, err := d.AddAnalysis(ctx, "https://example.com/not-facebook", ""); err == nil {
		t.Fatal("expected rejection of non-facebook URL")
	}
	if _, err := d.AddAnalysis(ctx, "   ", ""); err == nil {
		t.Fatal("expected rejection of blank page ref")
	}
}

func TestStopItemParksInReview(t *testing.T) {
	d, store := newTestDaemon(t)
	ctx := context.Background()

	item := testsupport.NewAnalysis(t, store, "123456789012345")
	item.Status = queue.StatusDownloading
	if err := store.Update(ctx, item); err != nil {
		t.Fatalf("update: %v", err)
	}

	stopped, err := d.StopItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("StopItem: %v", err)
	}
	if stopped.Status != queue.StatusReview || !queue.IsUserStopReason(stopped.ReviewReason) {
		t.Fatalf("stopped item = %+v", stopped)
	}

	if _, err := d.StopItem(ctx, item.ID); err == nil {
		t.Fatal("stopping a reviewed item must fail")
	}
	if _, err := d.StopItem(ctx, 9999); err == nil {
		t.Fatal("stopping an unknown item must fail")
	}
}

func TestQueueMaintenancePassthroughs(t *testing.T) {
	d, store := newTestDaemon(t)
	ctx := context.Background()

	completed := testsupport.NewAnalysis(t, store, "111111111111111")
	completed.Status = queue.StatusCompleted
	if err := store.Update(ctx, completed); err != nil {
		t.Fatalf("update completed: %v", err)
	}
	failed := testsupport.NewAnalysis(t, store, "222222222222222")
	failed.Status = queue.StatusFailed
	if err := store.Update(ctx, failed); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if n, err := d.ClearCompleted(ctx); err != nil || n != 1 {
		t.Fatalf("ClearCompleted = %d, %v", n, err)
	}
	if n, err := d.RetryFailed(ctx, nil); err != nil || n != 1 {
		t.Fatalf("RetryFailed = %d, %v", n, err)
	}

	items, err := d.ListQueue(ctx, []queue.Status{queue.StatusPending})
	if err != nil || len(items) != 1 {
		t.Fatalf("ListQueue = %d items, %v", len(items), err)
	}

	health, err := d.QueueHealth(ctx)
	if err != nil || health.Total != 1 {
		t.Fatalf("QueueHealth = %+v, %v", health, err)
	}

	dbHealth, err := d.DatabaseHealth(ctx)
	if err != nil || !dbHealth.DatabaseReadable || !dbHealth.IntegrityCheck {
		t.Fatalf("DatabaseHealth = %+v, %v", dbHealth, err)
	}

	if n, err := d.ClearQueue(ctx); err != nil || n != 1 {
		t.Fatalf("ClearQueue = %d, %v", n, err)
	}
}

func TestTestNotificationWithoutTopic(t *testing.T) {
	d, _ := newTestDaemon(t)
	sent, message, err := d.TestNotification(context.Background())
	if err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if sent || message == "" {
		t.Fatalf("sent=%v message=%q", sent, message)
	}
}
