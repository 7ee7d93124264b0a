package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BlueAI-edu/blueai-backend/internal/apperr"
	"github.com/BlueAI-edu/blueai-backend/internal/dto"
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"github.com/BlueAI-edu/blueai-backend/internal/repository"
)

// PipelineNotifier lets the submit path nudge the marking workers without a
// dependency on the pipeline itself. Enqueue durability never depends on the
// notification; workers also poll.
type PipelineNotifier interface {
	Wake()
}

// AttemptService is the attempt store front: join creates attempts, autosave
// and submit contend on the per-attempt row inside AttemptRepository.
type AttemptService interface {
	Join(req dto.JoinRequest) (*dto.JoinResponse, error)
	Autosave(attemptID string, req dto.AutosaveRequest) (*dto.AutosaveResponse, error)
	Submit(attemptID string, req dto.SubmitRequest) (*dto.StudentAttemptResponse, error)
	// EligibleStudents lists roster students for the join dropdown of a
	// class-linked assessment, resolved by join code (public path).
	EligibleStudents(joinCode string) ([]dto.StudentSummary, error)
}

type attemptService struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.AttemptRepository
	questionRepo   repository.QuestionRepository
	rosterRepo     repository.RosterRepository
	feedback       FeedbackService
	notifier       PipelineNotifier
}

func NewAttemptService(
	assessmentRepo repository.AssessmentRepository,
	attemptRepo repository.AttemptRepository,
	questionRepo repository.QuestionRepository,
	rosterRepo repository.RosterRepository,
	feedback FeedbackService,
	notifier PipelineNotifier,
) AttemptService {
	return &attemptService{
		assessmentRepo: assessmentRepo,
		attemptRepo:    attemptRepo,
		questionRepo:   questionRepo,
		rosterRepo:     rosterRepo,
		feedback:       feedback,
		notifier:       notifier,
	}
}

func (s *attemptService) Join(req dto.JoinRequest) (*dto.JoinResponse, error) {
	assessment, err := s.assessmentRepo.FindStartedByJoinCode(normalizeJoinCode(req.JoinCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("join code %q: %w", req.JoinCode, apperr.ErrNotFound)
		}
		return nil, err
	}

	now := time.Now().UTC()
	deadline := assessment.Deadline()
	if deadline != nil && now.After(*deadline) {
		if assessment.AutoClose {
			if ok, closeErr := s.assessmentRepo.Close(assessment.ID, now); closeErr == nil && ok {
				log.Info().Str("assessmentID", assessment.ID).Msg("Auto-closed assessment past its deadline")
			}
		}
		return nil, fmt.Errorf("assessment time is up: %w", apperr.ErrInvalidTransition)
	}

	studentName := req.StudentName
	studentID := req.StudentID
	if assessment.ClassID != nil && req.StudentID != nil {
		student, err := s.rosterRepo.FindStudent(*req.StudentID, *assessment.ClassID, assessment.OwnerTeacherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("student is not on the class roster: %w", apperr.ErrForbidden)
			}
			return nil, err
		}
		studentName = student.DisplayName()
	}

	attempt := model.Attempt{
		ID:             uuid.NewString(),
		AssessmentID:   assessment.ID,
		OwnerTeacherID: assessment.OwnerTeacherID,
		StudentName:    studentName,
		StudentID:      studentID,
		ClassID:        assessment.ClassID,
		Status:         model.AttemptStatusInProgress,
		Deadline:       deadline, // fixed now, never recomputed
		JoinedAt:       now,
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		return nil, err
	}
	log.Info().Str("attemptID", attempt.ID).Str("assessmentID", assessment.ID).
		Str("studentName", studentName).Msg("Student joined assessment")

	question, err := s.questionRepo.FindByID(assessment.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("loading question for join response: %w", err)
	}

	resp := dto.JoinResponse{AttemptID: attempt.ID, Deadline: deadline}
	if err := copier.Copy(&resp.Assessment, assessment); err != nil {
		return nil, err
	}
	if err := copier.Copy(&resp.Question, question); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *attemptService) Autosave(attemptID string, req dto.AutosaveRequest) (*dto.AutosaveResponse, error) {
	now := time.Now().UTC()
	applied, err := s.attemptRepo.ApplyAutosave(attemptID, req.AnswerText, req.Sequence, now)
	if err != nil {
		return nil, err
	}
	if applied {
		return &dto.AutosaveResponse{Saved: true, LastSavedAt: &now}, nil
	}

	// Rejected writes are either stale sequences or a finalized attempt;
	// neither is an error the student should see.
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attempt %s: %w", attemptID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if attempt.Finalized() {
		return &dto.AutosaveResponse{Saved: false, AlreadyFinalized: true}, nil
	}
	// Out-of-order delivery: a newer sequence already landed.
	log.Debug().Str("attemptID", attemptID).Int64("sequence", req.Sequence).
		Int64("lastSequence", attempt.LastSequence).Msg("Stale autosave ignored")
	return &dto.AutosaveResponse{Saved: false, LastSavedAt: attempt.LastSavedAt}, nil
}

func (s *attemptService) Submit(attemptID string, req dto.SubmitRequest) (*dto.StudentAttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attempt %s: %w", attemptID, apperr.ErrNotFound)
		}
		return nil, err
	}

	// Image answers are only valid against an image-mode question.
	if req.AnswerImageURL != nil {
		question, err := s.questionForAttempt(attempt)
		if err != nil {
			return nil, err
		}
		if question.AnswerMode != model.AnswerModeImage {
			return nil, fmt.Errorf("question %s does not take image answers: %w",
				question.ID, apperr.ErrInvalidTransition)
		}
	}

	now := time.Now().UTC()
	reason := req.Reason
	if reason == "" {
		reason = model.FinalizeReasonManual
	}
	// Late submissions are accepted and flagged, never rejected; grace
	// handling is a marking policy decision.
	late := attempt.Deadline != nil && now.After(*attempt.Deadline)
	if late {
		reason = model.FinalizeReasonTimeout
	}

	submitted, err := s.attemptRepo.Submit(attemptID, req.AnswerText, req.AnswerImageURL, late, reason, now)
	if err != nil {
		return nil, err
	}
	if submitted {
		log.Info().Str("attemptID", attemptID).Bool("late", late).Msg("Attempt submitted and marking job enqueued")
		s.notifier.Wake()
	} else if !attempt.Finalized() {
		// The CAS can only miss because another caller finalized first; both
		// callers then observe the submitted attempt (idempotent submit).
		log.Info().Str("attemptID", attemptID).Msg("Concurrent submit resolved idempotently")
	}

	return s.feedback.StudentView(attemptID)
}

func (s *attemptService) EligibleStudents(joinCode string) ([]dto.StudentSummary, error) {
	assessment, err := s.assessmentRepo.FindStartedByJoinCode(normalizeJoinCode(joinCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("join code %q: %w", joinCode, apperr.ErrNotFound)
		}
		return nil, err
	}
	if assessment.ClassID == nil {
		return []dto.StudentSummary{}, nil
	}
	students, err := s.rosterRepo.FindStudentsByClass(*assessment.ClassID, assessment.OwnerTeacherID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.StudentSummary, 0, len(students))
	for i := range students {
		summaries = append(summaries, dto.StudentSummary{
			ID:          students[i].ID,
			DisplayName: students[i].DisplayName(),
		})
	}
	return summaries, nil
}

func (s *attemptService) questionForAttempt(attempt *model.Attempt) (*model.Question, error) {
	assessment, err := s.assessmentRepo.FindByID(attempt.AssessmentID)
	if err != nil {
		return nil, fmt.Errorf("loading assessment %s: %w", attempt.AssessmentID, err)
	}
	question, err := s.questionRepo.FindByID(assessment.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("loading question %s: %w", assessment.QuestionID, err)
	}
	return question, nil
}

func normalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
