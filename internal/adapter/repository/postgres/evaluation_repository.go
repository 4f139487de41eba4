package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ressKim-io/promptclf/internal/domain/entity"
	"github.com/ressKim-io/promptclf/internal/domain/repository"
)

const recordBatchSize = 100

type evaluationRunRepository struct {
	db *gorm.DB
}

// NewEvaluationRunRepository creates a new evaluation run repository
func NewEvaluationRunRepository(db *gorm.DB) repository.EvaluationRunRepository {
	return &evaluationRunRepository{db: db}
}

func (r *evaluationRunRepository) Create(ctx context.Context, run *entity.EvaluationRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *evaluationRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EvaluationRun, error) {
	var run entity.EvaluationRun
	err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *evaluationRunRepository) List(ctx context.Context, limit, offset int) ([]*entity.EvaluationRun, int64, error) {
	var runs []*entity.EvaluationRun
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.EvaluationRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&runs).Error
	if err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}

func (r *evaluationRunRepository) ListByDataset(ctx context.Context, dataset string, limit, offset int) ([]*entity.EvaluationRun, int64, error) {
	var runs []*entity.EvaluationRun
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.EvaluationRun{}).Where("dataset = ?", dataset)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("dataset = ?", dataset).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&runs).Error
	if err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}

func (r *evaluationRunRepository) Update(ctx context.Context, run *entity.EvaluationRun) error {
	return r.db.WithContext(ctx).Omit("Records").Save(run).Error
}

type evaluationRecordRepository struct {
	db *gorm.DB
}

// NewEvaluationRecordRepository creates a new evaluation record repository
func NewEvaluationRecordRepository(db *gorm.DB) repository.EvaluationRecordRepository {
	return &evaluationRecordRepository{db: db}
}

func (r *evaluationRecordRepository) CreateBatch(ctx context.Context, records []*entity.EvaluationRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(records, recordBatchSize).Error
}

func (r *evaluationRecordRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*entity.EvaluationRecord, error) {
	var records []*entity.EvaluationRecord
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("position ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
