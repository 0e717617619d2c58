package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"adscribe/internal/logging"
	"adscribe/internal/queue"
	"adscribe/internal/services"
)

func (m *Manager) laneLogger(lane *laneState) *slog.Logger {
	if m.logger == nil {
		return logging.NewNop()
	}
	name := lane.name
	if name == "" {
		name = string(lane.kind)
	}
	return m.logger.With(
		logging.String(logging.FieldComponent, fmt.Sprintf("workflow-%s-runner", name)),
		logging.String(logging.FieldLane, name),
	)
}

// stageLoggerForLane returns the logger stage execution should use. When an
// item log can be created, stage output goes to the per-item file instead of
// the daemon log so each analysis has a self-contained record.
func (m *Manager) stageLoggerForLane(ctx context.Context, laneLogger *slog.Logger, item *queue.Item) *slog.Logger {
	base := laneLogger
	if base == nil {
		base = m.logger
	}
	if base == nil {
		base = logging.NewNop()
	}

	if item != nil && m.itemLogger != nil {
		path, _, err := m.itemLogger.Ensure(item)
		if err != nil {
			base.Warn("item log unavailable", logging.Error(err))
		} else {
			handler, logErr := m.itemLogger.CreateHandler(path)
			if logErr != nil {
				base.Warn("failed to create item log writer", logging.Error(logErr))
			} else {
				base = slog.New(handler).With(logging.Int64(logging.FieldItemID, item.ID))
			}
		}
	}

	return logging.WithContext(ctx, base)
}

func withStageContext(ctx context.Context, lane *laneState, stageName string, item *queue.Item, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if item != nil {
		ctx = services.WithItemID(ctx, item.ID)
	}
	if stageName != "" {
		ctx = services.WithStage(ctx, stageName)
	}
	if lane != nil {
		laneLabel := strings.TrimSpace(lane.name)
		if laneLabel == "" {
			laneLabel = string(lane.kind)
		}
		ctx = services.WithLane(ctx, laneLabel)
	}
	if requestID != "" {
		ctx = services.WithRequestID(ctx, requestID)
	}
	return ctx
}

func deriveStageLabel(status queue.Status) string {
	if status == "" {
		return ""
	}
	parts := strings.Fields(strings.ReplaceAll(string(status), "_", " "))
	for i, part := range parts {
		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
