package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BlueAI-edu/blueai-backend/internal/apperr"
	"github.com/BlueAI-edu/blueai-backend/internal/dto"
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"github.com/BlueAI-edu/blueai-backend/internal/repository"
)

// SecurityEventService is the anti-cheat audit trail. Record never fails the
// student flow; Report is the teacher-facing read path.
type SecurityEventService interface {
	Record(attemptID, kind string)
	Report(attemptID, teacherID string) (*dto.SecurityReportResponse, error)
}

type securityEventService struct {
	eventRepo   repository.SecurityEventRepository
	attemptRepo repository.AttemptRepository
}

func NewSecurityEventService(
	eventRepo repository.SecurityEventRepository,
	attemptRepo repository.AttemptRepository,
) SecurityEventService {
	return &securityEventService{eventRepo: eventRepo, attemptRepo: attemptRepo}
}

// Record appends an event, fire-and-forget. Unknown kinds and storage errors
// are logged and dropped; event loss is acceptable, blocking a student is not.
func (s *securityEventService) Record(attemptID, kind string) {
	if !model.ValidEventKind(kind) {
		log.Warn().Str("attemptID", attemptID).Str("kind", kind).Msg("Unknown security event kind dropped")
		return
	}
	event := model.SecurityEvent{
		AttemptID:  attemptID,
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.eventRepo.Append(&event); err != nil {
		log.Error().Err(err).Str("attemptID", attemptID).Str("kind", kind).Msg("Failed to append security event")
	}
}

func (s *securityEventService) Report(attemptID, teacherID string) (*dto.SecurityReportResponse, error) {
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

	events, err := s.eventRepo.FindByAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	report := dto.SecurityReportResponse{
		AttemptID: attemptID,
		Events:    make([]dto.SecurityEventResponse, 0, len(events)),
	}
	for i := range events {
		report.Events = append(report.Events, dto.SecurityEventResponse{
			Kind:       events[i].Kind,
			OccurredAt: events[i].OccurredAt,
		})
	}
	return &report, nil
}
