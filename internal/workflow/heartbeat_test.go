package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"adscribe/internal/logging"
	"adscribe/internal/queue"
	"adscribe/internal/testsupport"
)

func TestReclaimStaleItemsRollsBackStage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	item := testsupport.NewAnalysis(t, store, "123456789012345")
	stale := time.Now().Add(-time.Hour).UTC()
	item.Status = queue.StatusTranscribing
	item.LastHeartbeat = &stale
	if err := store.Update(context.Background(), item); err != nil {
		t.Fatalf("update item: %v", err)
	}

	monitor := NewHeartbeatMonitor(store, logging.NewNop(), time.Second, time.Minute)
	if err := monitor.ReclaimStaleItems(context.Background(), logging.NewNop()); err != nil {
		t.Fatalf("ReclaimStaleItems: %v", err)
	}

	stored, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != queue.StatusDownloaded {
		t.Fatalf("status = %s, want downloaded", stored.Status)
	}
}

func TestReclaimDisabledWithoutTimeout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	monitor := NewHeartbeatMonitor(store, logging.NewNop(), time.Second, 0)
	if err := monitor.ReclaimStaleItems(context.Background(), logging.NewNop()); err != nil {
		t.Fatalf("ReclaimStaleItems: %v", err)
	}
}

func TestHeartbeatLoopUpdatesItem(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	item := testsupport.NewAnalysis(t, store, "123456789012345")
	item.Status = queue.StatusScanning
	if err := store.Update(context.Background(), item); err != nil {
		t.Fatalf("update item: %v", err)
	}

	monitor := NewHeartbeatMonitor(store, logging.NewNop(), 20*time.Millisecond, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go monitor.StartLoop(ctx, &wg, item.ID)

	time.Sleep(100 * time.Millisecond)
	cancel()
	wg.Wait()

	stored, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.LastHeartbeat == nil {
		t.Fatal("heartbeat not recorded")
	}
}
