package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ressKim-io/promptclf/internal/domain/entity"
)

// EvaluationRunRepository defines the interface for evaluation run data operations
type EvaluationRunRepository interface {
	// Create creates a new run
	Create(ctx context.Context, run *entity.EvaluationRun) error

	// GetByID retrieves a run by its ID, nil if it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EvaluationRun, error)

	// List retrieves runs, newest first, with pagination
	List(ctx context.Context, limit, offset int) ([]*entity.EvaluationRun, int64, error)

	// ListByDataset retrieves runs for a dataset, newest first, with pagination
	ListByDataset(ctx context.Context, dataset string, limit, offset int) ([]*entity.EvaluationRun, int64, error)

	// Update updates a run
	Update(ctx context.Context, run *entity.EvaluationRun) error
}

// EvaluationRecordRepository defines the interface for per-record prediction data
type EvaluationRecordRepository interface {
	// CreateBatch stores predictions for a run at once
	CreateBatch(ctx context.Context, records []*entity.EvaluationRecord) error

	// GetByRunID retrieves all predictions for a run in dataset order
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]*entity.EvaluationRecord, error)
}
