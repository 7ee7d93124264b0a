package model

import (
	"time"

	"gorm.io/gorm"
)

// Assessment lifecycle statuses. Transitions are one-way:
// draft -> started -> closed.
const (
	AssessmentStatusDraft   = "draft"
	AssessmentStatusStarted = "started"
	AssessmentStatusClosed  = "closed"
)

type Assessment struct {
	ID             string         `json:"id" gorm:"primarykey;size:36"`
	OwnerTeacherID string         `json:"owner_teacher_id" gorm:"not null;index"`
	QuestionID     string         `json:"question_id" gorm:"not null;index;size:36"`
	ClassID        *string        `json:"class_id,omitempty" gorm:"size:36;index"`
	JoinCode       string         `json:"join_code,omitempty" gorm:"size:8;index"`
	Status         string         `json:"status" gorm:"not null;default:'draft';index"`
	DurationMins   *int           `json:"duration_minutes,omitempty"`
	AutoClose      bool           `json:"auto_close"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	ClosedAt       *time.Time     `json:"closed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Deadline computes the wall-clock submission deadline, or nil when the
// assessment is untimed or not yet started.
func (a *Assessment) Deadline() *time.Time {
	if a.DurationMins == nil || a.StartedAt == nil {
		return nil
	}
	d := a.StartedAt.Add(time.Duration(*a.DurationMins) * time.Minute)
	return &d
}
