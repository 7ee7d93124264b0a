package service

import (
	"errors"
	"fmt"
	"math/rand"
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

const (
	joinCodeLength      = 6
	joinCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxJoinCodeAttempts = 5
)

// AssessmentService owns the assessment state machine: draft -> started ->
// closed, and join code issuance at start time.
type AssessmentService interface {
	Create(teacherID string, req dto.CreateAssessmentRequest) (*dto.AssessmentResponse, error)
	Start(assessmentID, teacherID string) (*dto.AssessmentResponse, error)
	Close(assessmentID, teacherID string) (*dto.AssessmentResponse, error)
	Get(assessmentID, teacherID string) (*dto.AssessmentResponse, error)
	ListByOwner(teacherID string) ([]dto.AssessmentResponse, error)
	ListAttempts(assessmentID, teacherID string) ([]dto.AttemptResponse, error)
}

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	questionRepo   repository.QuestionRepository
	attemptRepo    repository.AttemptRepository
}

func NewAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		questionRepo:   questionRepo,
		attemptRepo:    attemptRepo,
	}
}

func (s *assessmentService) Create(teacherID string, req dto.CreateAssessmentRequest) (*dto.AssessmentResponse, error) {
	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %s: %w", req.QuestionID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if question.OwnerTeacherID != teacherID {
		return nil, fmt.Errorf("question %s is not owned by caller: %w", req.QuestionID, apperr.ErrForbidden)
	}

	assessment := model.Assessment{
		ID:             uuid.NewString(),
		OwnerTeacherID: teacherID,
		QuestionID:     req.QuestionID,
		ClassID:        req.ClassID,
		Status:         model.AssessmentStatusDraft,
		DurationMins:   req.DurationMins,
		AutoClose:      req.AutoClose,
	}
	if err := s.assessmentRepo.Create(&assessment); err != nil {
		return nil, err
	}
	log.Info().Str("assessmentID", assessment.ID).Str("teacherID", teacherID).Msg("Assessment created in draft")
	return toAssessmentResponse(&assessment), nil
}

func (s *assessmentService) Start(assessmentID, teacherID string) (*dto.AssessmentResponse, error) {
	assessment, err := s.ownedAssessment(assessmentID, teacherID)
	if err != nil {
		return nil, err
	}
	if assessment.Status != model.AssessmentStatusDraft {
		return nil, fmt.Errorf("cannot start assessment in status %q: %w", assessment.Status, apperr.ErrInvalidTransition)
	}

	code, err := s.generateUniqueJoinCode()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ok, err := s.assessmentRepo.Start(assessmentID, code, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Raced with another start or close between the read and the CAS.
		return nil, fmt.Errorf("assessment %s left draft concurrently: %w", assessmentID, apperr.ErrInvalidTransition)
	}
	log.Info().Str("assessmentID", assessmentID).Str("joinCode", code).Msg("Assessment started")
	return s.Get(assessmentID, teacherID)
}

func (s *assessmentService) Close(assessmentID, teacherID string) (*dto.AssessmentResponse, error) {
	assessment, err := s.ownedAssessment(assessmentID, teacherID)
	if err != nil {
		return nil, err
	}
	if assessment.Status != model.AssessmentStatusStarted {
		return nil, fmt.Errorf("cannot close assessment in status %q: %w", assessment.Status, apperr.ErrInvalidTransition)
	}

	ok, err := s.assessmentRepo.Close(assessmentID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("assessment %s left started concurrently: %w", assessmentID, apperr.ErrInvalidTransition)
	}
	// Closing does not cascade: in-progress attempts finalize independently
	// and in-flight marking jobs run to completion.
	log.Info().Str("assessmentID", assessmentID).Msg("Assessment closed")
	return s.Get(assessmentID, teacherID)
}

func (s *assessmentService) Get(assessmentID, teacherID string) (*dto.AssessmentResponse, error) {
	assessment, err := s.ownedAssessment(assessmentID, teacherID)
	if err != nil {
		return nil, err
	}
	return toAssessmentResponse(assessment), nil
}

func (s *assessmentService) ListByOwner(teacherID string) ([]dto.AssessmentResponse, error) {
	assessments, err := s.assessmentRepo.FindAllByOwner(teacherID)
	if err != nil {
		return nil, err
	}
	resps := make([]dto.AssessmentResponse, 0, len(assessments))
	for i := range assessments {
		resps = append(resps, *toAssessmentResponse(&assessments[i]))
	}
	return resps, nil
}

func (s *assessmentService) ListAttempts(assessmentID, teacherID string) ([]dto.AttemptResponse, error) {
	if _, err := s.ownedAssessment(assessmentID, teacherID); err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.FindAllByAssessment(assessmentID)
	if err != nil {
		return nil, err
	}
	resps := make([]dto.AttemptResponse, 0, len(attempts))
	for i := range attempts {
		var resp dto.AttemptResponse
		if err := copier.Copy(&resp, &attempts[i]); err != nil {
			log.Error().Err(err).Str("attemptID", attempts[i].ID).Msg("Failed to copy attempt to response")
			continue
		}
		resps = append(resps, resp)
	}
	return resps, nil
}

// ownedAssessment loads an assessment and enforces teacher ownership.
func (s *assessmentService) ownedAssessment(assessmentID, teacherID string) (*model.Assessment, error) {
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
	return assessment, nil
}

// generateUniqueJoinCode draws short codes until one is free among non-closed
// assessments. The retry bound guards against a saturated code space; hitting
// it is an operational condition, not a caller mistake.
func (s *assessmentService) generateUniqueJoinCode() (string, error) {
	for i := 0; i < maxJoinCodeAttempts; i++ {
		code := randomJoinCode()
		inUse, err := s.assessmentRepo.JoinCodeInUse(code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
		log.Warn().Str("joinCode", code).Int("attempt", i+1).Msg("Join code collision, regenerating")
	}
	return "", fmt.Errorf("gave up after %d collisions: %w", maxJoinCodeAttempts, apperr.ErrCodeGenerationExhausted)
}

func randomJoinCode() string {
	b := make([]byte, joinCodeLength)
	for i := range b {
		b[i] = joinCodeAlphabet[rand.Intn(len(joinCodeAlphabet))]
	}
	return string(b)
}

func toAssessmentResponse(a *model.Assessment) *dto.AssessmentResponse {
	var resp dto.AssessmentResponse
	if err := copier.Copy(&resp, a); err != nil {
		log.Error().Err(err).Str("assessmentID", a.ID).Msg("Failed to copy assessment to response")
	}
	return &resp
}
