package repository

import (
	"time"

	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"gorm.io/gorm"
)

type AssessmentRepository interface {
	Create(assessment *model.Assessment) error
	FindByID(id string) (*model.Assessment, error)
	FindAllByOwner(teacherID string) ([]model.Assessment, error)
	// FindStartedByJoinCode resolves a join code against started assessments only.
	FindStartedByJoinCode(code string) (*model.Assessment, error)
	// JoinCodeInUse reports whether code is held by any non-closed assessment.
	// Codes may be recycled after closing.
	JoinCodeInUse(code string) (bool, error)
	// Start transitions draft -> started and stamps the join code atomically.
	// Returns false when the assessment was not in draft.
	Start(id, code string, at time.Time) (bool, error)
	// Close transitions started -> closed. Returns false when the assessment
	// was not started.
	Close(id string, at time.Time) (bool, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(assessment *model.Assessment) error {
	return r.db.Create(assessment).Error
}

func (r *assessmentRepository) FindByID(id string) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.db.First(&assessment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindAllByOwner(teacherID string) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.db.Where("owner_teacher_id = ?", teacherID).
		Order("created_at DESC").Find(&assessments).Error
	return assessments, err
}

func (r *assessmentRepository) FindStartedByJoinCode(code string) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.Where("join_code = ? AND status = ?", code, model.AssessmentStatusStarted).
		First(&assessment).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) JoinCodeInUse(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Assessment{}).
		Where("join_code = ? AND status <> ?", code, model.AssessmentStatusClosed).
		Count(&count).Error
	return count > 0, err
}

func (r *assessmentRepository) Start(id, code string, at time.Time) (bool, error) {
	res := r.db.Model(&model.Assessment{}).
		Where("id = ? AND status = ?", id, model.AssessmentStatusDraft).
		Updates(map[string]interface{}{
			"status":     model.AssessmentStatusStarted,
			"join_code":  code,
			"started_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *assessmentRepository) Close(id string, at time.Time) (bool, error) {
	res := r.db.Model(&model.Assessment{}).
		Where("id = ? AND status = ?", id, model.AssessmentStatusStarted).
		Updates(map[string]interface{}{
			"status":    model.AssessmentStatusClosed,
			"closed_at": at,
		})
	return res.RowsAffected > 0, res.Error
}
