package services

import (
	"errors"
	"fmt"
	"strings"

	"adscribe/internal/queue"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Wrap tags err with one of the sentinel markers above and prefixes the
// message with stage and operation context so queue error strings read
// uniformly across the pipeline.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := joinDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus decides which queue status a failed stage should land in.
// Validation, configuration, and not-found failures need operator attention
// rather than a blind retry, so they park the item in review.
func FailureStatus(err error) queue.Status {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration), errors.Is(err, ErrNotFound):
		return queue.StatusReview
	default:
		return queue.StatusFailed
	}
}

func joinDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{stage, operation, message} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
