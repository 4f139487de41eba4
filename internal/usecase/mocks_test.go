package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ressKim-io/promptclf/internal/domain/entity"
	"github.com/ressKim-io/promptclf/internal/domain/service"
)

// MockCompleter is a mock implementation of Completer
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockCompleter) Name() string {
	return "mock/test"
}

// MockDatasetProvider is a mock implementation of DatasetProvider
type MockDatasetProvider struct {
	mock.Mock
}

func (m *MockDatasetProvider) Load(ctx context.Context, name, split string) (*entity.Dataset, error) {
	args := m.Called(ctx, name, split)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Dataset), args.Error(1)
}

// MockClassifier is a mock implementation of Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, text string, labels *entity.LabelSet, examples []entity.Example) (*service.ClassificationResult, error) {
	args := m.Called(ctx, text, labels, examples)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClassificationResult), args.Error(1)
}

// MockEvaluationRunRepository is a mock implementation of EvaluationRunRepository
type MockEvaluationRunRepository struct {
	mock.Mock
}

func (m *MockEvaluationRunRepository) Create(ctx context.Context, run *entity.EvaluationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockEvaluationRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EvaluationRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EvaluationRun), args.Error(1)
}

func (m *MockEvaluationRunRepository) List(ctx context.Context, limit, offset int) ([]*entity.EvaluationRun, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.EvaluationRun), args.Get(1).(int64), args.Error(2)
}

func (m *MockEvaluationRunRepository) ListByDataset(ctx context.Context, dataset string, limit, offset int) ([]*entity.EvaluationRun, int64, error) {
	args := m.Called(ctx, dataset, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.EvaluationRun), args.Get(1).(int64), args.Error(2)
}

func (m *MockEvaluationRunRepository) Update(ctx context.Context, run *entity.EvaluationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// MockEvaluationRecordRepository is a mock implementation of EvaluationRecordRepository
type MockEvaluationRecordRepository struct {
	mock.Mock
}

func (m *MockEvaluationRecordRepository) CreateBatch(ctx context.Context, records []*entity.EvaluationRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockEvaluationRecordRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*entity.EvaluationRecord, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.EvaluationRecord), args.Error(1)
}
