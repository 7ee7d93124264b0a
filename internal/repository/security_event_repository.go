package repository

import (
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"gorm.io/gorm"
)

// SecurityEventRepository is append-only: no update or delete methods exist.
type SecurityEventRepository interface {
	Append(event *model.SecurityEvent) error
	FindByAttempt(attemptID string) ([]model.SecurityEvent, error)
}

type securityEventRepository struct {
	db *gorm.DB
}

func NewSecurityEventRepository(db *gorm.DB) SecurityEventRepository {
	return &securityEventRepository{db: db}
}

func (r *securityEventRepository) Append(event *model.SecurityEvent) error {
	return r.db.Create(event).Error
}

func (r *securityEventRepository) FindByAttempt(attemptID string) ([]model.SecurityEvent, error) {
	var events []model.SecurityEvent
	err := r.db.Where("attempt_id = ?", attemptID).
		Order("occurred_at ASC, id ASC").Find(&events).Error
	return events, err
}
