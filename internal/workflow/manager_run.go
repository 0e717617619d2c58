package workflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"adscribe/internal/logging"
	"adscribe/internal/queue"
)

// Start launches one goroutine per configured lane. The foreground lane
// scans pages; the background lane walks items through download,
// transcription, analysis, and reporting.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow already running")
	}

	var lanes []*laneState
	for _, kind := range m.laneOrder {
		if lane := m.lanes[kind]; lane != nil && len(lane.statusOrder) > 0 {
			lanes = append(lanes, lane)
		}
	}
	if len(lanes) == 0 {
		m.mu.Unlock()
		return errors.New("workflow stages not configured")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	for _, lane := range lanes {
		lane.logger = m.laneLogger(lane)
	}
	m.wg.Add(len(lanes))
	m.mu.Unlock()

	for _, lane := range lanes {
		go m.runLane(runCtx, lane)
	}
	return nil
}

// Stop cancels lane processing and blocks until every lane goroutine has
// exited.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

func (m *Manager) runLane(ctx context.Context, lane *laneState) {
	defer m.wg.Done()
	logger := lane.logger
	if logger == nil {
		logger = m.logger
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	for ctx.Err() == nil {
		if lane.runReclaimer {
			if err := m.heartbeat.ReclaimStaleItems(ctx, logger); err != nil {
				logger.Warn("reclaim stale processing failed; stuck items may remain",
					logging.Error(err),
					logging.String(logging.FieldEventType, "heartbeat_reclaim_failed"),
					logging.String(logging.FieldErrorHint, "check queue database access"),
				)
			}
		}

		item, err := m.claimNext(ctx, lane)
		switch {
		case err != nil:
			m.backoffAfterFetchError(ctx, logger, err)
		case item == nil:
			m.idleWait(ctx)
		default:
			if err := m.processItem(ctx, lane, logger, item); errors.Is(err, context.Canceled) {
				return
			}
		}
	}
}

func (m *Manager) claimNext(ctx context.Context, lane *laneState) (*queue.Item, error) {
	if lane == nil || len(lane.statusOrder) == 0 {
		return nil, nil
	}
	return m.store.NextForStatuses(ctx, lane.statusOrder...)
}

func (m *Manager) backoffAfterFetchError(ctx context.Context, logger *slog.Logger, err error) {
	m.setLastError(err)
	logger.Error("failed to fetch next queue item",
		logging.Error(err),
		logging.String(logging.FieldEventType, "queue_fetch_failed"),
		logging.String(logging.FieldErrorHint, "check queue database access"),
	)
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(m.cfg.Workflow.ErrorRetryInterval) * time.Second):
	}
}

func (m *Manager) idleWait(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(m.pollInterval):
	}
}
