package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type QuestionResponse struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject"`
	Topic        string    `json:"topic,omitempty"`
	QuestionText string    `json:"question_text"`
	MarkScheme   string    `json:"mark_scheme,omitempty"`
	ModelAnswer  *string   `json:"model_answer,omitempty"`
	MaxMarks     int       `json:"max_marks"`
	AnswerMode   string    `json:"answer_mode"`
	CreatedAt    time.Time `json:"created_at"`
}

// StudentQuestionResponse omits the mark scheme and model answer, which are
// never shown to students.
type StudentQuestionResponse struct {
	ID           string `json:"id"`
	Subject      string `json:"subject"`
	QuestionText string `json:"question_text"`
	MaxMarks     int    `json:"max_marks"`
	AnswerMode   string `json:"answer_mode"`
}

type AssessmentResponse struct {
	ID           string     `json:"id"`
	QuestionID   string     `json:"question_id"`
	ClassID      *string    `json:"class_id,omitempty"`
	JoinCode     string     `json:"join_code,omitempty"`
	Status       string     `json:"status"`
	DurationMins *int       `json:"duration_minutes,omitempty"`
	AutoClose    bool       `json:"auto_close"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AttemptResponse is the teacher-facing view of an attempt, feedback included
// regardless of release state.
type AttemptResponse struct {
	ID               string     `json:"attempt_id"`
	AssessmentID     string     `json:"assessment_id"`
	StudentName      string     `json:"student_name"`
	StudentID        *string    `json:"student_id,omitempty"`
	Status           string     `json:"status"`
	Late             bool       `json:"late"`
	FinalizeReason   string     `json:"finalize_reason,omitempty"`
	AnswerText       string     `json:"answer_text"`
	Score            *int       `json:"score,omitempty"`
	WWW              string     `json:"www,omitempty"`
	NextSteps        string     `json:"next_steps,omitempty"`
	OverallFeedback  string     `json:"overall_feedback,omitempty"`
	FailureReason    string     `json:"failure_reason,omitempty"`
	FeedbackReleased bool       `json:"feedback_released"`
	JoinedAt         time.Time  `json:"joined_at"`
	SubmittedAt      *time.Time `json:"submitted_at,omitempty"`
	MarkedAt         *time.Time `json:"marked_at,omitempty"`
}

// StudentAttemptResponse is the student-facing view. Score and feedback fields
// stay nil until the teacher releases feedback, whatever the attempt status.
type StudentAttemptResponse struct {
	ID               string     `json:"attempt_id"`
	AssessmentID     string     `json:"assessment_id"`
	StudentName      string     `json:"student_name"`
	Status           string     `json:"status"`
	AnswerText       string     `json:"answer_text"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	FeedbackReleased bool       `json:"feedback_released"`
	Score            *int       `json:"score,omitempty"`
	WWW              *string    `json:"www,omitempty"`
	NextSteps        *string    `json:"next_steps,omitempty"`
	OverallFeedback  *string    `json:"overall_feedback,omitempty"`
	SubmittedAt      *time.Time `json:"submitted_at,omitempty"`
}

type JoinResponse struct {
	AttemptID  string                  `json:"attempt_id"`
	Assessment AssessmentResponse      `json:"assessment"`
	Question   StudentQuestionResponse `json:"question"`
	Deadline   *time.Time              `json:"deadline,omitempty"`
}

type AutosaveResponse struct {
	Saved bool `json:"saved"`
	// AlreadyFinalized is a benign signal that the attempt left in_progress;
	// the client should stop autosaving, nothing went wrong.
	AlreadyFinalized bool       `json:"already_finalized,omitempty"`
	LastSavedAt      *time.Time `json:"last_saved_at,omitempty"`
}

type SecurityEventResponse struct {
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}

type SecurityReportResponse struct {
	AttemptID string                  `json:"attempt_id"`
	Events    []SecurityEventResponse `json:"events"`
}

type ReleaseAllResponse struct {
	ReleasedCount int `json:"released_count"`
}

type StudentSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
