package stage

import (
	"context"

	"adscribe/internal/queue"
)

// Handler is implemented by each pipeline stage. Prepare runs before the
// item is marked processing, Execute does the work, and HealthCheck feeds
// the status surfaces.
type Handler interface {
	Prepare(context.Context, *queue.Item) error
	Execute(context.Context, *queue.Item) error
	HealthCheck(context.Context) Health
}
