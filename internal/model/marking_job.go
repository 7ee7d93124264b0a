package model

import "time"

// Marking job statuses. A job is claimed by exactly one worker at a time
// (pending -> running) and either completes (done), reschedules itself back to
// pending with a later NextRetryAt, or gives up (failed). The unique index on
// AttemptID guarantees at most one job per attempt; re-enqueue resets the
// existing row instead of inserting a second one.
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

type MarkingJob struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	AttemptID string `json:"attempt_id" gorm:"not null;uniqueIndex;size:36"`
	// AnswerSnapshot is the answer text captured at enqueue time.
	AnswerSnapshot string    `json:"answer_snapshot" gorm:"type:text"`
	AnswerImageURL *string   `json:"answer_image_url,omitempty"`
	Status         string    `json:"status" gorm:"not null;default:'pending';index"`
	RetryCount     int       `json:"retry_count" gorm:"not null;default:0"`
	NextRetryAt    time.Time `json:"next_retry_at" gorm:"not null;index"`
	LastError      string    `json:"last_error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
