package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ressKim-io/promptclf/internal/domain/entity"
	"github.com/ressKim-io/promptclf/internal/domain/repository"
	"github.com/ressKim-io/promptclf/internal/domain/service"
)

// Default harness slice sizes
const (
	DefaultMaxExamples = 200
	DefaultShots       = 10
)

// History page bounds
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

const progressEvery = 25

// EvaluateInput represents one evaluation of a dataset
type EvaluateInput struct {
	Dataset     string
	Shots       int
	MaxExamples int
}

// EvaluationOutput summarizes an evaluation run
type EvaluationOutput struct {
	RunID            uuid.UUID `json:"run_id"`
	Dataset          string    `json:"dataset"`
	Split            string    `json:"split"`
	Mode             string    `json:"mode"`
	Shots            int       `json:"shots"`
	Status           string    `json:"status"`
	TotalRecords     int       `json:"total_records"`
	CompletedRecords int       `json:"completed_records"`
	CorrectCount     int       `json:"correct_count"`
	Accuracy         float64   `json:"accuracy"`
	Error            string    `json:"error,omitempty"`
	CreatedAt        string    `json:"created_at"`
}

// PredictionOutput is a single scored prediction
type PredictionOutput struct {
	Position       int    `json:"position"`
	Text           string `json:"text"`
	TrueLabel      string `json:"true_label"`
	PredictedLabel string `json:"predicted_label"`
	Correct        bool   `json:"correct"`
	LatencyMs      int64  `json:"latency_ms"`
}

// EvaluationDetailOutput is a run with its predictions
type EvaluationDetailOutput struct {
	*EvaluationOutput
	Predictions []*PredictionOutput `json:"predictions"`
}

// EvaluationListOutput represents a page of evaluation runs
type EvaluationListOutput struct {
	Evaluations []*EvaluationOutput `json:"evaluations"`
	Total       int64               `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
	HasMore     bool                `json:"has_more"`
}

// EvaluationUsecase defines the interface for the accuracy harness
type EvaluationUsecase interface {
	Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluationOutput, error)
	History(ctx context.Context, dataset string, limit, offset int) (*EvaluationListOutput, error)
	GetRun(ctx context.Context, id uuid.UUID) (*EvaluationDetailOutput, error)
}

type evaluationUsecase struct {
	datasets   service.DatasetProvider
	classifier service.Classifier
	runRepo    repository.EvaluationRunRepository
	recordRepo repository.EvaluationRecordRepository
	logger     *zap.Logger
}

// NewEvaluationUsecase creates a new evaluation usecase.
// runRepo and recordRepo may both be nil, in which case runs are not persisted.
func NewEvaluationUsecase(
	datasets service.DatasetProvider,
	classifier service.Classifier,
	runRepo repository.EvaluationRunRepository,
	recordRepo repository.EvaluationRecordRepository,
	logger *zap.Logger,
) EvaluationUsecase {
	return &evaluationUsecase{
		datasets:   datasets,
		classifier: classifier,
		runRepo:    runRepo,
		recordRepo: recordRepo,
		logger:     logger,
	}
}

func (u *evaluationUsecase) Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluationOutput, error) {
	if input == nil || input.Dataset == "" || input.Shots < 0 || input.MaxExamples <= 0 {
		return nil, ErrInvalidRequest
	}

	test, err := u.datasets.Load(ctx, input.Dataset, fmt.Sprintf("test[:%d]", input.MaxExamples))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatasetUnavailable, input.Dataset, err)
	}

	var examples []entity.Example
	if input.Shots > 0 {
		train, err := u.datasets.Load(ctx, input.Dataset, fmt.Sprintf("train[:%d]", input.Shots))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDatasetUnavailable, input.Dataset, err)
		}
		// Few-shot labels are named with the test split's mapping.
		train.LabelNames = test.LabelNames
		if examples, err = train.Examples(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDatasetUnavailable, input.Dataset, err)
		}
	}

	labels := test.LabelSet()
	run := entity.NewEvaluationRun(input.Dataset, test.Split, input.Shots, len(test.Records))
	run.Status = entity.RunStatusRunning
	if u.runRepo != nil {
		if err := u.runRepo.Create(ctx, run); err != nil {
			return nil, err
		}
	}

	log := u.logger.With(
		zap.String("run_id", run.ID.String()),
		zap.String("dataset", run.Dataset),
		zap.String("mode", run.ModeLabel()),
	)
	log.Info("Evaluation started", zap.Int("records", run.TotalRecords), zap.Int("labels", labels.Len()))

	records := make([]*entity.EvaluationRecord, 0, len(test.Records))
	for i, rec := range test.Records {
		trueLabel, err := test.LabelName(rec.Label)
		if err != nil {
			return nil, u.fail(ctx, log, run, records, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err))
		}

		record := entity.NewEvaluationRecord(run.ID, i, rec.Text, trueLabel)
		start := time.Now()
		recordCtx := service.WithRequestID(ctx, fmt.Sprintf("%s-%d", run.ID, i))
		result, err := u.classifier.Classify(recordCtx, rec.Text, labels, examples)
		if err != nil {
			return nil, u.fail(ctx, log, run, records, err)
		}
		record.SetPrediction(result.Label, time.Since(start).Milliseconds())
		run.Record(record.Correct)
		records = append(records, record)

		if run.CompletedRecords%progressEvery == 0 {
			log.Info("Evaluation progress",
				zap.Int("completed", run.CompletedRecords),
				zap.Int("total", run.TotalRecords),
				zap.Float64("accuracy", run.Accuracy()),
			)
		}
	}

	run.Status = entity.RunStatusCompleted
	if err := u.persist(ctx, run, records); err != nil {
		return nil, err
	}

	log.Info("Evaluation completed",
		zap.Int("correct", run.CorrectCount),
		zap.Int("total", run.CompletedRecords),
		zap.Float64("accuracy", run.Accuracy()),
	)

	return toEvaluationOutput(run), nil
}

// fail marks the run failed, stores what was scored so far and returns cause
func (u *evaluationUsecase) fail(ctx context.Context, log *zap.Logger, run *entity.EvaluationRun, records []*entity.EvaluationRecord, cause error) error {
	run.Fail(cause)
	log.Error("Evaluation failed", zap.Int("completed", run.CompletedRecords), zap.Error(cause))
	if err := u.persist(ctx, run, records); err != nil {
		log.Warn("Failed to persist failed run", zap.Error(err))
	}
	return cause
}

func (u *evaluationUsecase) persist(ctx context.Context, run *entity.EvaluationRun, records []*entity.EvaluationRecord) error {
	if u.runRepo == nil {
		return nil
	}
	if u.recordRepo != nil && len(records) > 0 {
		if err := u.recordRepo.CreateBatch(ctx, records); err != nil {
			return err
		}
	}
	return u.runRepo.Update(ctx, run)
}

func (u *evaluationUsecase) History(ctx context.Context, dataset string, limit, offset int) (*EvaluationListOutput, error) {
	if u.runRepo == nil {
		return nil, ErrHistoryDisabled
	}
	limit, offset = HistoryPage(limit, offset)

	var (
		runs  []*entity.EvaluationRun
		total int64
		err   error
	)
	if dataset != "" {
		runs, total, err = u.runRepo.ListByDataset(ctx, dataset, limit, offset)
	} else {
		runs, total, err = u.runRepo.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	outputs := make([]*EvaluationOutput, len(runs))
	for i, r := range runs {
		outputs[i] = toEvaluationOutput(r)
	}

	return &EvaluationListOutput{
		Evaluations: outputs,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
		HasMore:     int64(offset+limit) < total,
	}, nil
}

// HistoryPage normalizes a requested page. A non-positive limit takes the
// default, large limits are capped and a negative offset starts at zero.
func HistoryPage(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (u *evaluationUsecase) GetRun(ctx context.Context, id uuid.UUID) (*EvaluationDetailOutput, error) {
	if u.runRepo == nil || u.recordRepo == nil {
		return nil, ErrHistoryDisabled
	}

	run, err := u.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}

	records, err := u.recordRepo.GetByRunID(ctx, id)
	if err != nil {
		return nil, err
	}

	predictions := make([]*PredictionOutput, len(records))
	for i, r := range records {
		predictions[i] = &PredictionOutput{
			Position:       r.Position,
			Text:           r.Text,
			TrueLabel:      r.TrueLabel,
			PredictedLabel: r.PredictedLabel,
			Correct:        r.Correct,
			LatencyMs:      r.LatencyMs,
		}
	}

	return &EvaluationDetailOutput{
		EvaluationOutput: toEvaluationOutput(run),
		Predictions:      predictions,
	}, nil
}

func toEvaluationOutput(r *entity.EvaluationRun) *EvaluationOutput {
	return &EvaluationOutput{
		RunID:            r.ID,
		Dataset:          r.Dataset,
		Split:            r.Split,
		Mode:             r.ModeLabel(),
		Shots:            r.Shots,
		Status:           string(r.Status),
		TotalRecords:     r.TotalRecords,
		CompletedRecords: r.CompletedRecords,
		CorrectCount:     r.CorrectCount,
		Accuracy:         r.Accuracy(),
		Error:            r.Error,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
}
