package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adscribe/internal/logging"
	"adscribe/internal/queue"
	"adscribe/internal/services"
)

func (m *Manager) handleStageFailure(ctx context.Context, stageName string, item *queue.Item, stageErr error) {
	base := m.logger
	if base == nil {
		base = logging.NewNop()
	}
	logger := m.stageLoggerForLane(ctx, base, item).With(logging.String(logging.FieldComponent, "workflow-manager"))

	message := m.classifyStageFailure(stageName, stageErr)
	resolved := services.FailureStatus(stageErr)
	if resolved == queue.StatusReview {
		item.SetReview(message, fmt.Sprintf("%s needs attention", stageName))
	} else {
		item.SetFailed(message)
	}

	logger.Error("stage failed",
		logging.String("resolved_status", string(resolved)),
		logging.String("error_message", strings.TrimSpace(message)),
		logging.String(logging.FieldEventType, "stage_failure"),
		logging.Error(stageErr),
	)

	if err := m.store.Update(ctx, item); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("daemon shutting down, could not update stage failure")
		} else {
			logger.Error("failed to persist stage failure", logging.Error(err))
		}
	}

	m.setLastItem(item)
	if resolved == queue.StatusReview {
		m.notifyReviewRequired(ctx, item, message)
	} else {
		m.notifyStageError(ctx, stageName, item, stageErr)
	}
	m.checkQueueCompletion(ctx)
}

func (m *Manager) classifyStageFailure(stageName string, stageErr error) string {
	if stageErr == nil {
		return fmt.Sprintf("%s failed without error detail", stageName)
	}
	message := strings.TrimSpace(stageErr.Error())
	if message == "" {
		message = fmt.Sprintf("%s failed", stageName)
	}
	return message
}
