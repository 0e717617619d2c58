package queue

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func rollbackCaseClause() (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(stageRollbackTransitions)*2)
	b.WriteString("CASE status")
	for _, tr := range stageRollbackTransitions {
		b.WriteString(" WHEN ? THEN ?")
		args = append(args, tr.from, tr.to)
	}
	b.WriteString(" ELSE status END")
	return b.String(), args
}

func processingStatusArgs() (string, []any) {
	args := make([]any, 0, len(stageRollbackTransitions))
	for _, tr := range stageRollbackTransitions {
		args = append(args, tr.from)
	}
	return makePlaceholders(len(args)), args
}

// ResetStuckProcessing resets items in processing states back to the start of their current stage.
func (s *Store) ResetStuckProcessing(ctx context.Context) (int64, error) {
	caseClause, caseArgs := rollbackCaseClause()
	inClause, inArgs := processingStatusArgs()

	args := make([]any, 0, len(caseArgs)+1+len(inArgs))
	args = append(args, caseArgs...)
	args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
	args = append(args, inArgs...)

	res, err := s.execWithRetry(
		ctx,
		`UPDATE queue_items
         SET status = `+caseClause+`,
             progress_stage = 'Reset from stuck processing',
             progress_percent = 0, progress_message = NULL, last_heartbeat = NULL, updated_at = ?
         WHERE status IN (`+inClause+`)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck items: %w", err)
	}
	return res.RowsAffected()
}

// UpdateHeartbeat updates the last heartbeat timestamp for an in-flight item.
func (s *Store) UpdateHeartbeat(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE queue_items SET last_heartbeat = ?, updated_at = ? WHERE id = ?`,
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
		id,
	); err != nil {
		return fmt.Errorf("update heartbeat: %w", err)
	}
	return nil
}

// ReclaimStaleProcessing returns items stuck in processing back to the start of
// their current stage when heartbeats expire.
func (s *Store) ReclaimStaleProcessing(ctx context.Context, cutoff time.Time) (int64, error) {
	caseClause, caseArgs := rollbackCaseClause()
	inClause, inArgs := processingStatusArgs()

	args := make([]any, 0, len(caseArgs)+1+len(inArgs)+1)
	args = append(args, caseArgs...)
	args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
	args = append(args, inArgs...)
	args = append(args, cutoff.UTC().Format(time.RFC3339Nano))

	res, err := s.execWithRetry(
		ctx,
		`UPDATE queue_items
        SET status = `+caseClause+`,
            progress_stage = 'Reclaimed from stale processing',
            progress_percent = 0, progress_message = NULL, last_heartbeat = NULL, updated_at = ?
        WHERE status IN (`+inClause+`) AND last_heartbeat IS NOT NULL AND last_heartbeat < ?`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("reclaim stale items: %w", err)
	}
	return res.RowsAffected()
}

// RetryFailed moves failed items back to pending for reprocessing.
func (s *Store) RetryFailed(ctx context.Context, ids ...int64) (int64, error) {
	if len(ids) == 0 {
		res, err := s.execWithRetry(
			ctx,
			`UPDATE queue_items
            SET status = ?, progress_stage = 'Retry requested', progress_percent = 0,
                progress_message = NULL, error_message = NULL, updated_at = ?
            WHERE status = ?`,
			StatusPending,
			time.Now().UTC().Format(time.RFC3339Nano),
			StatusFailed,
		)
		if err != nil {
			return 0, fmt.Errorf("retry failed items: %w", err)
		}
		return res.RowsAffected()
	}

	placeholders := makePlaceholders(len(ids))
	args := make([]any, 0, len(ids)+2)
	args = append(args, StatusPending, time.Now().UTC().Format(time.RFC3339Nano))
	for _, id := range ids {
		args = append(args, id)
	}
	query := `UPDATE queue_items
        SET status = ?, progress_stage = 'Retry requested', progress_percent = 0,
            progress_message = NULL, error_message = NULL, updated_at = ?
        WHERE id IN (` + placeholders + `) AND status = '` + string(StatusFailed) + `'`
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("retry selected items: %w", err)
	}
	return res.RowsAffected()
}
