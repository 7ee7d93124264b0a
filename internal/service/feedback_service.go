package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BlueAI-edu/blueai-backend/internal/apperr"
	"github.com/BlueAI-edu/blueai-backend/internal/dto"
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"github.com/BlueAI-edu/blueai-backend/internal/repository"
)

// FeedbackService gates student visibility of marking results. Release is
// independent of marking completion and never reverts automatically.
type FeedbackService interface {
	Release(attemptID, teacherID string) error
	ReleaseAll(assessmentID, teacherID string) (*dto.ReleaseAllResponse, error)
	// StudentView is the public read path: feedback fields are redacted until
	// release, whatever the attempt status.
	StudentView(attemptID string) (*dto.StudentAttemptResponse, error)
	TeacherView(attemptID, teacherID string) (*dto.AttemptResponse, error)
	Moderate(attemptID, teacherID string, req dto.ModerateFeedbackRequest) (*dto.AttemptResponse, error)
}

type feedbackService struct {
	attemptRepo    repository.AttemptRepository
	assessmentRepo repository.AssessmentRepository
}

func NewFeedbackService(
	attemptRepo repository.AttemptRepository,
	assessmentRepo repository.AssessmentRepository,
) FeedbackService {
	return &feedbackService{attemptRepo: attemptRepo, assessmentRepo: assessmentRepo}
}

func (s *feedbackService) Release(attemptID, teacherID string) error {
	attempt, err := s.ownedAttempt(attemptID, teacherID)
	if err != nil {
		return err
	}
	if attempt.Status != model.AttemptStatusMarked {
		return fmt.Errorf("cannot release feedback for attempt in status %q: %w",
			attempt.Status, apperr.ErrInvalidTransition)
	}
	released, err := s.attemptRepo.Release(attemptID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !released {
		// Already released; releasing twice is a no-op, not an error.
		return nil
	}
	log.Info().Str("attemptID", attemptID).Msg("Feedback released to student")
	return nil
}

func (s *feedbackService) ReleaseAll(assessmentID, teacherID string) (*dto.ReleaseAllResponse, error) {
	assessment, err := s.assessmentRepo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assessment %s: %w", assessmentID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if assessment.OwnerTeacherID != teacherID {
		return nil, fmt.Errorf("assessment %s is not owned by caller: %w", assessmentID, apperr.ErrForbidden)
	}

	ids, err := s.attemptRepo.FindMarkedUnreleased(assessmentID)
	if err != nil {
		return nil, err
	}

	// Each attempt is released independently so one concurrent mutation
	// cannot abort the batch.
	count := 0
	for _, id := range ids {
		released, err := s.attemptRepo.Release(id, time.Now().UTC())
		if err != nil {
			log.Error().Err(err).Str("attemptID", id).Msg("Release failed during batch, continuing")
			continue
		}
		if released {
			count++
		}
	}
	log.Info().Str("assessmentID", assessmentID).Int("released", count).Msg("Batch feedback release completed")
	return &dto.ReleaseAllResponse{ReleasedCount: count}, nil
}

func (s *feedbackService) StudentView(attemptID string) (*dto.StudentAttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attempt %s: %w", attemptID, apperr.ErrNotFound)
		}
		return nil, err
	}

	resp := dto.StudentAttemptResponse{
		ID:               attempt.ID,
		AssessmentID:     attempt.AssessmentID,
		StudentName:      attempt.StudentName,
		Status:           attempt.Status,
		AnswerText:       attempt.AnswerText,
		Deadline:         attempt.Deadline,
		FeedbackReleased: attempt.FeedbackReleased,
		SubmittedAt:      attempt.SubmittedAt,
	}
	if attempt.FeedbackReleased {
		resp.Score = attempt.Score
		resp.WWW = &attempt.WWW
		resp.NextSteps = &attempt.NextSteps
		resp.OverallFeedback = &attempt.OverallFeedback
	}
	return &resp, nil
}

func (s *feedbackService) TeacherView(attemptID, teacherID string) (*dto.AttemptResponse, error) {
	attempt, err := s.ownedAttempt(attemptID, teacherID)
	if err != nil {
		return nil, err
	}
	var resp dto.AttemptResponse
	if err := copier.Copy(&resp, attempt); err != nil {
		return nil, fmt.Errorf("preparing attempt response: %w", err)
	}
	return &resp, nil
}

// Moderate applies teacher edits to already-marked feedback. This mutates
// data in place; it is not a state transition and does not touch release.
func (s *feedbackService) Moderate(attemptID, teacherID string, req dto.ModerateFeedbackRequest) (*dto.AttemptResponse, error) {
	attempt, err := s.ownedAttempt(attemptID, teacherID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptStatusMarked {
		return nil, fmt.Errorf("cannot moderate feedback for attempt in status %q: %w",
			attempt.Status, apperr.ErrInvalidTransition)
	}

	fields := map[string]interface{}{}
	if req.Score != nil {
		fields["score"] = *req.Score
	}
	if req.WWW != nil {
		fields["www"] = *req.WWW
	}
	if req.NextSteps != nil {
		fields["next_steps"] = *req.NextSteps
	}
	if req.OverallFeedback != nil {
		fields["overall_feedback"] = *req.OverallFeedback
	}
	if len(fields) > 0 {
		if _, err := s.attemptRepo.UpdateFeedbackFields(attemptID, fields); err != nil {
			return nil, err
		}
		log.Info().Str("attemptID", attemptID).Int("fields", len(fields)).Msg("Feedback moderated by teacher")
	}
	return s.TeacherView(attemptID, teacherID)
}

func (s *feedbackService) ownedAttempt(attemptID, teacherID string) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attempt %s: %w", attemptID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if attempt.OwnerTeacherID != teacherID {
		return nil, fmt.Errorf("attempt %s is not owned by caller: %w", attemptID, apperr.ErrForbidden)
	}
	return attempt, nil
}
