package repository

import (
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"gorm.io/gorm"
)

// RosterRepository is read-only from the assessment core's perspective; class
// and student CRUD lives outside this service.
type RosterRepository interface {
	FindStudentsByClass(classID, teacherID string) ([]model.Student, error)
	// FindStudent resolves a student only when they belong to the given class
	// and teacher and are not archived.
	FindStudent(studentID, classID, teacherID string) (*model.Student, error)
}

type rosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) RosterRepository {
	return &rosterRepository{db: db}
}

func (r *rosterRepository) FindStudentsByClass(classID, teacherID string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.Where("class_id = ? AND owner_teacher_id = ? AND archived = ?",
		classID, teacherID, false).
		Order("last_name ASC, first_name ASC").Find(&students).Error
	return students, err
}

func (r *rosterRepository) FindStudent(studentID, classID, teacherID string) (*model.Student, error) {
	var student model.Student
	err := r.db.Where("id = ? AND class_id = ? AND owner_teacher_id = ? AND archived = ?",
		studentID, classID, teacherID, false).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}
