package repository

import (
	"time"

	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkingResult is the validated output of a scoring pass, written back to the
// attempt in a single atomic update.
type MarkingResult struct {
	Score           int
	WWW             string
	NextSteps       string
	OverallFeedback string
}

// AttemptRepository is the per-attempt ordering point: every conditional
// update below contends on the attempt row, so autosave-vs-submit and
// submit-vs-submit races serialize in the database. Methods returning a bool
// report whether the guarded update took effect (compare-and-set semantics).
type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByID(id string) (*model.Attempt, error)
	FindAllByAssessment(assessmentID string) ([]model.Attempt, error)

	// ApplyAutosave writes answer text only while the attempt is in_progress
	// and the sequence is strictly newer than the last accepted one.
	ApplyAutosave(id string, answerText string, sequence int64, at time.Time) (bool, error)

	// Submit transitions in_progress -> submitted and enqueues the marking
	// job in the same transaction, so a submitted attempt is never left
	// unqueued. finalAnswer, when non-nil, replaces the autosaved text;
	// imageURL, when non-nil, records the uploaded answer image for OCR.
	Submit(id string, finalAnswer, imageURL *string, late bool, reason string, at time.Time) (bool, error)

	// MarkCompleted transitions submitted|error -> marked and overwrites the
	// feedback fields. Never applies to an attempt already marked.
	MarkCompleted(id string, result MarkingResult, at time.Time) (bool, error)

	// MarkError transitions submitted|error -> error with a persisted reason.
	MarkError(id string, reason string) (bool, error)

	// Release flips feedback_released on a marked attempt. Returns false when
	// the attempt is already released (idempotence handled by callers) or not
	// marked.
	Release(id string, at time.Time) (bool, error)

	FindMarkedUnreleased(assessmentID string) ([]string, error)

	// UpdateFeedbackFields applies teacher moderation edits to a marked
	// attempt. Not a state transition.
	UpdateFeedbackFields(id string, fields map[string]interface{}) (bool, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id string) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByAssessment(assessmentID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("assessment_id = ?", assessmentID).
		Order("joined_at ASC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) ApplyAutosave(id string, answerText string, sequence int64, at time.Time) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND status = ? AND last_sequence < ?",
			id, model.AttemptStatusInProgress, sequence).
		Updates(map[string]interface{}{
			"answer_text":   answerText,
			"last_sequence": sequence,
			"last_saved_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *attemptRepository) Submit(id string, finalAnswer, imageURL *string, late bool, reason string, at time.Time) (bool, error) {
	submitted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":          model.AttemptStatusSubmitted,
			"late":            late,
			"finalize_reason": reason,
			"submitted_at":    at,
		}
		if finalAnswer != nil {
			updates["answer_text"] = *finalAnswer
		}
		if imageURL != nil {
			updates["answer_image_url"] = *imageURL
		}
		res := tx.Model(&model.Attempt{}).
			Where("id = ? AND status = ?", id, model.AttemptStatusInProgress).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race; the winner already enqueued.
			return nil
		}

		var attempt model.Attempt
		if err := tx.First(&attempt, "id = ?", id).Error; err != nil {
			return err
		}
		job := model.MarkingJob{
			AttemptID:      id,
			AnswerSnapshot: attempt.AnswerText,
			AnswerImageURL: attempt.AnswerImageURL,
			Status:         model.JobStatusPending,
			NextRetryAt:    at,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attempt_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"answer_snapshot":  attempt.AnswerText,
				"answer_image_url": attempt.AnswerImageURL,
				"status":           model.JobStatusPending,
				"retry_count":      0,
				"next_retry_at":    at,
				"last_error":       "",
			}),
		}).Create(&job).Error; err != nil {
			return err
		}
		submitted = true
		return nil
	})
	return submitted, err
}

func (r *attemptRepository) MarkCompleted(id string, result MarkingResult, at time.Time) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND status IN ?", id,
			[]string{model.AttemptStatusSubmitted, model.AttemptStatusError}).
		Updates(map[string]interface{}{
			"status":           model.AttemptStatusMarked,
			"score":            result.Score,
			"www":              result.WWW,
			"next_steps":       result.NextSteps,
			"overall_feedback": result.OverallFeedback,
			"failure_reason":   "",
			"marked_at":        at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *attemptRepository) MarkError(id string, reason string) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND status IN ?", id,
			[]string{model.AttemptStatusSubmitted, model.AttemptStatusError}).
		Updates(map[string]interface{}{
			"status":         model.AttemptStatusError,
			"failure_reason": reason,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *attemptRepository) Release(id string, at time.Time) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND status = ? AND feedback_released = ?",
			id, model.AttemptStatusMarked, false).
		Updates(map[string]interface{}{
			"feedback_released":    true,
			"feedback_released_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *attemptRepository) FindMarkedUnreleased(assessmentID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.Attempt{}).
		Where("assessment_id = ? AND status = ? AND feedback_released = ?",
			assessmentID, model.AttemptStatusMarked, false).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *attemptRepository) UpdateFeedbackFields(id string, fields map[string]interface{}) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND status = ?", id, model.AttemptStatusMarked).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}
