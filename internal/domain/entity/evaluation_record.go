package entity

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationRecord is the prediction for a single dataset record
type EvaluationRecord struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RunID          uuid.UUID `json:"run_id" gorm:"type:uuid;not null;index"`
	Position       int       `json:"position" gorm:"not null"`
	Text           string    `json:"text" gorm:"type:text;not null"`
	TrueLabel      string    `json:"true_label" gorm:"type:varchar(200);not null"`
	PredictedLabel string    `json:"predicted_label" gorm:"type:text"`
	Correct        bool      `json:"correct" gorm:"not null"`
	LatencyMs      int64     `json:"latency_ms" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (EvaluationRecord) TableName() string {
	return "evaluation_records"
}

// NewEvaluationRecord creates an unscored record
func NewEvaluationRecord(runID uuid.UUID, position int, text, trueLabel string) *EvaluationRecord {
	return &EvaluationRecord{
		ID:        uuid.New(),
		RunID:     runID,
		Position:  position,
		Text:      text,
		TrueLabel: trueLabel,
	}
}

// SetPrediction stores the predicted label. Scoring is exact string equality.
func (r *EvaluationRecord) SetPrediction(predicted string, latencyMs int64) {
	r.PredictedLabel = predicted
	r.Correct = predicted == r.TrueLabel
	r.LatencyMs = latencyMs
}
