package model

import "time"

// Security event kinds logged by the student client during an attempt.
const (
	EventFocusLoss      = "focus_loss"
	EventFullscreenExit = "fullscreen_exit"
	EventCopyAttempt    = "copy_attempt"
	EventPasteAttempt   = "paste_attempt"
	EventRightClick     = "right_click"
)

// ValidEventKind reports whether kind is one of the known security event kinds.
func ValidEventKind(kind string) bool {
	switch kind {
	case EventFocusLoss, EventFullscreenExit, EventCopyAttempt, EventPasteAttempt, EventRightClick:
		return true
	}
	return false
}

// SecurityEvent is an append-only audit record. Rows are never updated or
// deleted; duplicates are kept because event frequency is itself a signal.
type SecurityEvent struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	AttemptID  string    `json:"attempt_id" gorm:"not null;index;size:36"`
	Kind       string    `json:"kind" gorm:"not null"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}
