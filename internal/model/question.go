package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer modes determine whether the marking pipeline needs an OCR pass.
const (
	AnswerModeText  = "text"
	AnswerModeImage = "image"
)

type Question struct {
	ID             string         `json:"id" gorm:"primarykey;size:36"`
	OwnerTeacherID string         `json:"owner_teacher_id" gorm:"not null;index"`
	Subject        string         `json:"subject" gorm:"not null"`
	Topic          string         `json:"topic,omitempty"`
	QuestionText   string         `json:"question_text" gorm:"type:text;not null"`
	MarkScheme     string         `json:"mark_scheme" gorm:"type:text;not null"`
	ModelAnswer    *string        `json:"model_answer,omitempty" gorm:"type:text"`
	MaxMarks       int            `json:"max_marks" gorm:"not null"`
	AnswerMode     string         `json:"answer_mode" gorm:"not null;default:'text'"` // "text" or "image"
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
