package models

import (
	"time"

	"gorm.io/gorm"
)

type Paper struct {
	gorm.Model
	Type        string `gorm:"size:20;not null"` // bachelor, diploma, master
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`

	TeacherID uint `gorm:"not null;index"`
	Teacher   User `gorm:"foreignKey:TeacherID"`
	StudentID uint `gorm:"not null;uniqueIndex"`
	Student   User `gorm:"foreignKey:StudentID"`

	Topics []Topic `gorm:"many2many:paper_topics;"`

	// Null until the engine assigns the paper to a committee.
	CommitteeID *uint
	Committee   *Committee `gorm:"foreignKey:CommitteeID"`

	// Null until the student formally submits.
	SubmissionID *uint

	// Tri-state review outcome: null = pending, true = accepted,
	// false = rejected.
	IsValid *bool

	ScheduledGrading *time.Time

	Grades []PaperGrade `gorm:"foreignKey:PaperID"`
}

// PaperGrade is one grading member's score sheet for one paper. The
// secretary never grades, so no row ever carries the secretary's id.
type PaperGrade struct {
	CommitteeID uint `gorm:"primaryKey;autoIncrement:false"`
	TeacherID   uint `gorm:"primaryKey;autoIncrement:false"`
	PaperID     uint `gorm:"primaryKey;autoIncrement:false"`

	ForPaper        int `gorm:"not null"` // 1-10
	ForPresentation int `gorm:"not null"` // 1-10
}
