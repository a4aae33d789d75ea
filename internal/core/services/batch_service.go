package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"bioportal/internal/core/domain"
	"bioportal/internal/core/logger"
	"bioportal/internal/core/tracing"
)

// RowHandler processes one mapped batch row. index is the zero-based row
// number in the input file.
type RowHandler func(ctx context.Context, index int, fields domain.Fields) (domain.RowResult, error)

// ProgressFunc is called after every row with the running count.
type ProgressFunc func(domain.Progress)

type BatchService struct{}

func NewBatchService() *BatchService {
	return &BatchService{}
}

// Process runs handler over every record in order. A failing or panicking
// handler marks only its own row failed; the remaining rows still run. Once
// ctx is done the remaining rows are marked failed without calling handler.
// Artifact names are unique across the returned outcomes.
func (s *BatchService) Process(
	ctx context.Context,
	records []domain.Record,
	mapping domain.ColumnMapping,
	handler RowHandler,
	onProgress ProgressFunc,
) []domain.RowOutcome {
	ctx, span := tracing.StartSpan(ctx, "batch.process", attribute.Int("batch.rows", len(records)))
	defer span.End()

	total := len(records)
	outcomes := make([]domain.RowOutcome, 0, total)

	for i, record := range records {
		var outcome domain.RowOutcome
		if err := ctx.Err(); err != nil {
			outcome = failedRow(i, err)
		} else {
			outcome = s.processRow(ctx, i, mapping.Map(record), handler)
		}
		outcomes = append(outcomes, outcome)

		if onProgress != nil {
			onProgress(domain.Progress{Completed: i + 1, Total: total})
		}
	}

	uniqueArtifactNames(outcomes)

	summary := domain.Summarize(outcomes)
	span.SetAttributes(attribute.Int("batch.failed", summary.Failed))
	logger.InfoContext(ctx, "Batch processed", "rows", summary.Total, "done", summary.Done, "failed", summary.Failed)

	return outcomes
}

func (s *BatchService) processRow(ctx context.Context, index int, fields domain.Fields, handler RowHandler) (outcome domain.RowOutcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Batch row handler panicked", "row", index, "panic", r)
			outcome = failedRow(index, fmt.Errorf("row handler panicked: %v", r))
		}
	}()

	result, err := handler(ctx, index, fields)
	if err != nil {
		logger.WarnContext(ctx, "Batch row failed", "row", index, "error", err)
		return failedRow(index, err)
	}

	status := result.Status
	if status == "" {
		status = domain.RowStatusDone
	}
	return domain.RowOutcome{
		Row:       index,
		Status:    status,
		Artifacts: result.Artifacts,
		Message:   result.Message,
	}
}

func failedRow(index int, err error) domain.RowOutcome {
	return domain.RowOutcome{
		Row:    index,
		Status: domain.RowStatusFailed,
		Error:  err.Error(),
		Kind:   domain.Classify(err),
	}
}

// uniqueArtifactNames renames artifacts whose name an earlier row already
// used to <stem>_row<N><ext>, N being the one-based row number.
func uniqueArtifactNames(outcomes []domain.RowOutcome) {
	seen := make(map[string]bool)
	for i := range outcomes {
		o := &outcomes[i]
		if len(o.Artifacts) == 0 {
			continue
		}
		arts := make([]domain.Artifact, len(o.Artifacts))
		copy(arts, o.Artifacts)
		for j := range arts {
			name := arts[j].Name
			if seen[name] {
				ext := path.Ext(name)
				stem := strings.TrimSuffix(name, ext)
				name = fmt.Sprintf("%s_row%d%s", stem, o.Row+1, ext)
				for k := 2; seen[name]; k++ {
					name = fmt.Sprintf("%s_row%d_%d%s", stem, o.Row+1, k, ext)
				}
				arts[j].Name = name
			}
			seen[name] = true
		}
		o.Artifacts = arts
	}
}
