package repository

import (
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id string) (*model.Question, error)
	FindAllByOwner(teacherID string) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id string) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAllByOwner(teacherID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("owner_teacher_id = ?", teacherID).
		Order("created_at DESC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id string) error {
	return r.db.Delete(&model.Question{}, "id = ?", id).Error
}
