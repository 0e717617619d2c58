package ipc_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"adscribe/internal/daemon"
	"adscribe/internal/ipc"
	"adscribe/internal/logging"
	"adscribe/internal/queue"
	"adscribe/internal/stage"
	"adscribe/internal/testsupport"
	"adscribe/internal/workflow"
)

type noopStage struct{ name string }

func (s noopStage) Prepare(context.Context, *queue.Item) error { return nil }
func (s noopStage) Execute(context.Context, *queue.Item) error { return nil }
func (s noopStage) HealthCheck(context.Context) stage.Health   { return stage.Healthy(s.name) }

func newClient(t *testing.T) (*ipc.Client, *queue.Store, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Workflow.QueuePollInterval = 3600
	store := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()

	mgr := workflow.NewManager(cfg, store, logger)
	mgr.ConfigureStages(workflow.StageSet{
		Scanner:     noopStage{name: "scanner"},
		Downloader:  noopStage{name: "downloader"},
		Transcriber: noopStage{name: "transcriber"},
		Analyzer:    noopStage{name: "analyzer"},
		Reporter:    noopStage{name: "reporter"},
	})

	logPath := filepath.Join(cfg.Paths.LogDir, "adscribe.log")
	d, err := daemon.New(cfg, store, logger, mgr, logPath)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		_ = d.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socket := filepath.Join(cfg.Paths.LogDir, "adscribed.sock")
	srv, err := ipc.NewServer(ctx, socket, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC server test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(srv.Close)

	time.Sleep(50 * time.Millisecond)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, store, logPath
}

func TestIPCLifecycleAndQueueOperations(t *testing.T) {
	client, store, logPath := newClient(t)
	ctx := context.Background()

	startResp, err := client.Start()
	if err != nil {
		t.Fatalf("Start RPC: %v", err)
	}
	if !startResp.Started {
		t.Fatalf("expected Started=true, message=%s", startResp.Message)
	}

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status RPC: %v", err)
	}
	if !status.Running || status.PID <= 0 {
		t.Fatalf("status = %+v", status)
	}
	if len(status.StageHealth) != 5 {
		t.Errorf("stage health entries = %d", len(status.StageHealth))
	}
	if status.LogPath != logPath {
		t.Errorf("log path = %s", status.LogPath)
	}

	analyzed, err := client.Analyze("https://www.facebook.com/ads/library/?view_all_page_id=123456789012345", "en")
	if err != nil {
		t.Fatalf("Analyze RPC: %v", err)
	}
	if analyzed.Item.Status != string(queue.StatusPending) {
		t.Fatalf("analyze item = %+v", analyzed.Item)
	}
	if _, err := client.Analyze("https://example.com/nope", ""); err == nil {
		t.Fatal("expected Analyze to reject non-facebook URL")
	}

	list, err := client.QueueList(nil)
	if err != nil {
		t.Fatalf("QueueList RPC: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("queue items = %d", len(list.Items))
	}

	described, err := client.QueueDescribe(analyzed.Item.ID)
	if err != nil {
		t.Fatalf("QueueDescribe RPC: %v", err)
	}
	if described.Item.ID != analyzed.Item.ID {
		t.Fatalf("described = %+v", described.Item)
	}

	stopped, err := client.QueueStop(analyzed.Item.ID)
	if err != nil {
		t.Fatalf("QueueStop RPC: %v", err)
	}
	if stopped.Item.Status != string(queue.StatusReview) || !stopped.Item.NeedsReview {
		t.Fatalf("stopped item = %+v", stopped.Item)
	}

	failed := testsupport.NewAnalysis(t, store, "222222222222222")
	failed.SetFailed("scan failed")
	if err := store.Update(ctx, failed); err != nil {
		t.Fatalf("update failed item: %v", err)
	}
	retried, err := client.QueueRetry(nil)
	if err != nil {
		t.Fatalf("QueueRetry RPC: %v", err)
	}
	if retried.Retried != 1 {
		t.Errorf("retried = %d", retried.Retried)
	}

	failed.SetFailed("scan failed again")
	if err := store.Update(ctx, failed); err != nil {
		t.Fatalf("re-fail item: %v", err)
	}
	cleared, err := client.QueueClearFailed()
	if err != nil {
		t.Fatalf("QueueClearFailed RPC: %v", err)
	}
	if cleared.Removed != 1 {
		t.Errorf("cleared failed = %d", cleared.Removed)
	}

	health, err := client.QueueHealth()
	if err != nil {
		t.Fatalf("QueueHealth RPC: %v", err)
	}
	if health.Total != 1 || health.Review != 1 {
		t.Errorf("health = %+v", health)
	}

	dbHealth, err := client.DatabaseHealth()
	if err != nil {
		t.Fatalf("DatabaseHealth RPC: %v", err)
	}
	if !dbHealth.DatabaseReadable || !dbHealth.TableExists {
		t.Errorf("db health = %+v", dbHealth)
	}

	removed, err := client.QueueRemove(analyzed.Item.ID)
	if err != nil {
		t.Fatalf("QueueRemove RPC: %v", err)
	}
	if !removed.Removed {
		t.Error("expected item removal")
	}

	clearResp, err := client.QueueClear()
	if err != nil {
		t.Fatalf("QueueClear RPC: %v", err)
	}
	if clearResp.Removed != 0 {
		t.Errorf("clear removed = %d", clearResp.Removed)
	}

	stopResp, err := client.Stop()
	if err != nil {
		t.Fatalf("Stop RPC: %v", err)
	}
	if !stopResp.Stopped {
		t.Error("expected Stopped=true")
	}
}

func TestIPCLogTail(t *testing.T) {
	client, _, logPath := newClient(t)

	if err := os.WriteFile(logPath, []byte("first\nsecond\nthird\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	resp, err := client.LogTail(ipc.LogTailRequest{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatalf("LogTail RPC: %v", err)
	}
	if len(resp.Lines) != 2 || resp.Lines[0] != "second" || resp.Lines[1] != "third" {
		t.Fatalf("lines = %#v", resp.Lines)
	}
	if resp.LogPath != logPath {
		t.Errorf("log path = %s", resp.LogPath)
	}

	next, err := client.LogTail(ipc.LogTailRequest{Offset: resp.Offset, Limit: 10})
	if err != nil {
		t.Fatalf("LogTail resume RPC: %v", err)
	}
	if len(next.Lines) != 0 {
		t.Errorf("resume lines = %#v", next.Lines)
	}
}

func TestIPCTestNotificationWithoutTopic(t *testing.T) {
	client, _, _ := newClient(t)

	resp, err := client.TestNotification()
	if err != nil {
		t.Fatalf("TestNotification RPC: %v", err)
	}
	if resp.Sent {
		t.Error("notification must not send without a topic")
	}
	if resp.Message == "" {
		t.Error("expected explanatory message")
	}
}
