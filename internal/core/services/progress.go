package services

import (
	"context"
	"errors"

	"bioportal/internal/core/domain"
	"bioportal/internal/core/logger"
	"bioportal/internal/core/ports"
)

// ProgressFanout forwards every event to all publishers. A failing publisher
// does not stop delivery to the others.
type ProgressFanout struct {
	publishers []ports.ProgressPublisher
}

func NewProgressFanout(publishers ...ports.ProgressPublisher) *ProgressFanout {
	f := &ProgressFanout{}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

func (f *ProgressFanout) PublishProgress(ctx context.Context, event domain.ProgressEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishProgress(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reporter returns a ProgressFunc that publishes events for one batch.
// Publish errors are logged and otherwise ignored.
func (f *ProgressFanout) Reporter(ctx context.Context, batchID, tool string) ProgressFunc {
	return func(p domain.Progress) {
		if err := f.PublishProgress(ctx, domain.NewProgressEvent(batchID, tool, p)); err != nil {
			logger.WarnContext(ctx, "Failed to publish batch progress", "batch_id", batchID, "error", err)
		}
	}
}
