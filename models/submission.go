package models

import "gorm.io/gorm"

// Submission is a student's written-exam enrollment, independent of the
// paper itself.
type Submission struct {
	gorm.Model
	StudentID   uint `gorm:"not null;uniqueIndex"`
	IsSubmitted bool `gorm:"not null;default:false"`

	Grade *WrittenExamGrade `gorm:"foreignKey:SubmissionID"`
}

// WrittenExamGrade: InitialGrade 0 means the student was absent; a dispute
// grade is only legal when IsDisputed is set and the student was present.
type WrittenExamGrade struct {
	ID           uint `gorm:"primaryKey"`
	SubmissionID uint `gorm:"not null;uniqueIndex"`

	InitialGrade int  `gorm:"not null"` // 0-10, 0 = absent
	IsDisputed   bool `gorm:"not null;default:false"`
	DisputeGrade *int // 1-10
}
