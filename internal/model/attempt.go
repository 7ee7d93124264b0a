package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt statuses. Transitions are monotonic along
// in_progress -> submitted -> {marked, error}. A retried error attempt stays
// "error" until a successful marking pass flips it to "marked".
const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusSubmitted  = "submitted"
	AttemptStatusMarked     = "marked"
	AttemptStatusError      = "error"
)

// Finalize reasons recorded at submit time.
const (
	FinalizeReasonManual  = "manual"
	FinalizeReasonTimeout = "timeout"
)

type Attempt struct {
	ID             string  `json:"attempt_id" gorm:"primarykey;size:36"`
	AssessmentID   string  `json:"assessment_id" gorm:"not null;index;size:36"`
	OwnerTeacherID string  `json:"owner_teacher_id" gorm:"not null;index"` // denormalized for authorization
	StudentName    string  `json:"student_name" gorm:"not null"`
	StudentID      *string `json:"student_id,omitempty" gorm:"size:36"`
	ClassID        *string `json:"class_id,omitempty" gorm:"size:36"`

	AnswerText     string  `json:"answer_text" gorm:"type:text"`
	AnswerImageURL *string `json:"answer_image_url,omitempty"`
	// LastSequence is the highest autosave client_sequence accepted so far.
	// Stale or duplicate autosaves (sequence <= LastSequence) are no-ops.
	LastSequence int64 `json:"-" gorm:"not null;default:0"`

	Status         string `json:"status" gorm:"not null;default:'in_progress';index"`
	Late           bool   `json:"late"`
	FinalizeReason string `json:"finalize_reason,omitempty"`

	Score           *int   `json:"score,omitempty"`
	WWW             string `json:"www,omitempty" gorm:"type:text"`
	NextSteps       string `json:"next_steps,omitempty" gorm:"type:text"`
	OverallFeedback string `json:"overall_feedback,omitempty" gorm:"type:text"`
	FailureReason   string `json:"failure_reason,omitempty"`

	FeedbackReleased   bool       `json:"feedback_released" gorm:"not null;default:false"`
	FeedbackReleasedAt *time.Time `json:"feedback_released_at,omitempty"`

	// Deadline is fixed when the attempt is created, never recomputed.
	Deadline    *time.Time     `json:"deadline,omitempty"`
	JoinedAt    time.Time      `json:"joined_at"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
	MarkedAt    *time.Time     `json:"marked_at,omitempty"`
	LastSavedAt *time.Time     `json:"last_saved_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Finalized reports whether the attempt has left in_progress.
func (a *Attempt) Finalized() bool {
	return a.Status != AttemptStatusInProgress
}
