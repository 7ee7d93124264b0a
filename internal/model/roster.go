package model

import (
	"time"

	"gorm.io/gorm"
)

type Class struct {
	ID             string         `json:"id" gorm:"primarykey;size:36"`
	OwnerTeacherID string         `json:"owner_teacher_id" gorm:"not null;index"`
	Name           string         `json:"name" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

type Student struct {
	ID             string         `json:"id" gorm:"primarykey;size:36"`
	ClassID        string         `json:"class_id" gorm:"not null;index;size:36"`
	OwnerTeacherID string         `json:"owner_teacher_id" gorm:"not null;index"`
	FirstName      string         `json:"first_name" gorm:"not null"`
	LastName       string         `json:"last_name" gorm:"not null"`
	Archived       bool           `json:"archived"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// DisplayName is the name shown on attempts joined via the class roster.
func (s *Student) DisplayName() string {
	return s.FirstName + " " + s.LastName
}
