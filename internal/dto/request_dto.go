package dto

// --- Teacher requests ---

type CreateQuestionRequest struct {
	Subject      string  `json:"subject" binding:"required"`
	Topic        string  `json:"topic"`
	QuestionText string  `json:"question_text" binding:"required"`
	MarkScheme   string  `json:"mark_scheme" binding:"required"`
	ModelAnswer  *string `json:"model_answer"`
	MaxMarks     int     `json:"max_marks" binding:"required,gt=0"`
	AnswerMode   string  `json:"answer_mode" binding:"omitempty,oneof=text image"`
}

type CreateAssessmentRequest struct {
	QuestionID   string  `json:"question_id" binding:"required"`
	ClassID      *string `json:"class_id"`
	DurationMins *int    `json:"duration_minutes" binding:"omitempty,gt=0"`
	AutoClose    bool    `json:"auto_close"`
}

// ModerateFeedbackRequest carries teacher edits to already-marked feedback.
// Only the provided fields are changed; this is not a state transition.
type ModerateFeedbackRequest struct {
	Score           *int    `json:"score" binding:"omitempty,gte=0"`
	WWW             *string `json:"www"`
	NextSteps       *string `json:"next_steps"`
	OverallFeedback *string `json:"overall_feedback"`
}

// --- Student (public) requests ---

type JoinRequest struct {
	JoinCode    string  `json:"join_code" binding:"required"`
	StudentName string  `json:"student_name" binding:"required"`
	StudentID   *string `json:"student_id"`
}

// AutosaveRequest carries a periodic partial answer write. Sequence is a
// client-side monotonic counter; deliveries with a stale sequence are ignored.
type AutosaveRequest struct {
	AnswerText string `json:"answer_text"`
	Sequence   int64  `json:"client_sequence" binding:"required,gt=0"`
}

// SubmitRequest finalizes the attempt. AnswerImageURL is only accepted when
// the assessment's question is in image answer mode; it points at the upload
// the marking pipeline will OCR.
type SubmitRequest struct {
	AnswerText     *string `json:"answer_text"`
	AnswerImageURL *string `json:"answer_image_url" binding:"omitempty,url"`
	Reason         string  `json:"reason" binding:"omitempty,oneof=manual timeout"`
}

type SecurityEventRequest struct {
	Kind string `json:"event_type" binding:"required"`
}
