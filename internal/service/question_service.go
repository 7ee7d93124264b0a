package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BlueAI-edu/blueai-backend/internal/apperr"
	"github.com/BlueAI-edu/blueai-backend/internal/dto"
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"github.com/BlueAI-edu/blueai-backend/internal/repository"
)

type QuestionService interface {
	Create(teacherID string, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	Get(questionID, teacherID string) (*dto.QuestionResponse, error)
	ListByOwner(teacherID string) ([]dto.QuestionResponse, error)
	Delete(questionID, teacherID string) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) Create(teacherID string, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	mode := req.AnswerMode
	if mode == "" {
		mode = model.AnswerModeText
	}
	question := model.Question{
		ID:             uuid.NewString(),
		OwnerTeacherID: teacherID,
		Subject:        req.Subject,
		Topic:          req.Topic,
		QuestionText:   req.QuestionText,
		MarkScheme:     req.MarkScheme,
		ModelAnswer:    req.ModelAnswer,
		MaxMarks:       req.MaxMarks,
		AnswerMode:     mode,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		return nil, err
	}
	log.Info().Str("questionID", question.ID).Str("teacherID", teacherID).Msg("Question created")
	return toQuestionResponse(&question)
}

func (s *questionService) Get(questionID, teacherID string) (*dto.QuestionResponse, error) {
	question, err := s.ownedQuestion(questionID, teacherID)
	if err != nil {
		return nil, err
	}
	return toQuestionResponse(question)
}

func (s *questionService) ListByOwner(teacherID string) ([]dto.QuestionResponse, error) {
	questions, err := s.questionRepo.FindAllByOwner(teacherID)
	if err != nil {
		return nil, err
	}
	resps := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp, err := toQuestionResponse(&questions[i])
		if err != nil {
			return nil, err
		}
		resps = append(resps, *resp)
	}
	return resps, nil
}

func (s *questionService) Delete(questionID, teacherID string) error {
	if _, err := s.ownedQuestion(questionID, teacherID); err != nil {
		return err
	}
	return s.questionRepo.Delete(questionID)
}

func (s *questionService) ownedQuestion(questionID, teacherID string) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %s: %w", questionID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if question.OwnerTeacherID != teacherID {
		return nil, fmt.Errorf("question %s is not owned by caller: %w", questionID, apperr.ErrForbidden)
	}
	return question, nil
}

func toQuestionResponse(q *model.Question) (*dto.QuestionResponse, error) {
	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, q); err != nil {
		return nil, fmt.Errorf("preparing question response: %w", err)
	}
	return &resp, nil
}
