package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the current state of an evaluation run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// EvaluationRun is one pass of the harness over a dataset split
type EvaluationRun struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Dataset          string    `json:"dataset" gorm:"type:varchar(100);not null;index"`
	Split            string    `json:"split" gorm:"type:varchar(50);not null"`
	Shots            int       `json:"shots" gorm:"default:0"`
	Status           RunStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	TotalRecords     int       `json:"total_records" gorm:"not null"`
	CompletedRecords int       `json:"completed_records" gorm:"default:0"`
	CorrectCount     int       `json:"correct_count" gorm:"default:0"`
	Error            string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Records []EvaluationRecord `json:"records,omitempty" gorm:"foreignKey:RunID"`
}

// TableName returns the table name for GORM
func (EvaluationRun) TableName() string {
	return "evaluation_runs"
}

// NewEvaluationRun creates a pending run. shots == 0 means zero-shot.
func NewEvaluationRun(dataset, split string, shots, totalRecords int) *EvaluationRun {
	return &EvaluationRun{
		ID:           uuid.New(),
		Dataset:      dataset,
		Split:        split,
		Shots:        shots,
		Status:       RunStatusPending,
		TotalRecords: totalRecords,
	}
}

// Accuracy returns the fraction of completed records predicted correctly
func (r *EvaluationRun) Accuracy() float64 {
	if r.CompletedRecords == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.CompletedRecords)
}

// Record counts one scored prediction
func (r *EvaluationRun) Record(correct bool) {
	r.CompletedRecords++
	if correct {
		r.CorrectCount++
	}
}

// Fail marks the run failed with the given cause
func (r *EvaluationRun) Fail(err error) {
	r.Status = RunStatusFailed
	if err != nil {
		r.Error = err.Error()
	}
}

// IsFewShot reports whether few-shot examples were supplied
func (r *EvaluationRun) IsFewShot() bool {
	return r.Shots > 0
}

// ModeLabel renders the mode as "Zero Shot" or "<n>-Shot"
func (r *EvaluationRun) ModeLabel() string {
	if !r.IsFewShot() {
		return "Zero Shot"
	}
	return fmt.Sprintf("%d-Shot", r.Shots)
}

// IsCompleted returns true if the run is completed
func (r *EvaluationRun) IsCompleted() bool {
	return r.Status == RunStatusCompleted
}

// CanRun returns true if the run can accept predictions
func (r *EvaluationRun) CanRun() bool {
	return r.Status == RunStatusPending || r.Status == RunStatusRunning
}
