package api

import (
	"context"
	"fmt"
	"strings"

	"adscribe/internal/queue"
)

// QueueService exposes read-only queue views shared by the IPC server and
// the HTTP API.
type QueueService struct {
	store *queue.Store
}

// NewQueueService builds a QueueService backed by the given store.
func NewQueueService(store *queue.Store) *QueueService {
	if store == nil {
		return nil
	}
	return &QueueService{store: store}
}

// List returns queue items, optionally filtered by status.
func (s *QueueService) List(ctx context.Context, statuses ...queue.Status) (QueueListResponse, error) {
	if s == nil || s.store == nil {
		return QueueListResponse{}, fmt.Errorf("queue service unavailable")
	}
	items, err := s.store.List(ctx, statuses...)
	if err != nil {
		return QueueListResponse{}, err
	}
	return QueueListResponse{Items: FromQueueItems(items)}, nil
}

// Describe returns a single queue item by ID. The boolean reports whether
// the item exists.
func (s *QueueService) Describe(ctx context.Context, id int64) (QueueItemResponse, bool, error) {
	if s == nil || s.store == nil {
		return QueueItemResponse{}, false, fmt.Errorf("queue service unavailable")
	}
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return QueueItemResponse{}, false, err
	}
	if item == nil {
		return QueueItemResponse{}, false, nil
	}
	return QueueItemResponse{Item: FromQueueItem(item)}, true, nil
}

// ParseStatuses converts raw status strings into queue statuses, rejecting
// values the queue does not recognize.
func ParseStatuses(values []string) ([]queue.Status, error) {
	statuses := make([]queue.Status, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		status, ok := queue.ParseStatus(trimmed)
		if !ok {
			return nil, fmt.Errorf("unknown status %q", trimmed)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
