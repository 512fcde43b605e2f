package models

import (
	"time"
)

// SessionSettings is the singleton configuration of the current academic
// session. Exactly one row exists (ID 1); the reset operation replaces it
// wholesale instead of mutating it.
type SessionSettings struct {
	ID               uint   `gorm:"primaryKey"`
	SessionName      string `gorm:"size:100;not null"`
	CurrentPromotion string `gorm:"size:20;not null"`

	ApplyStart          time.Time `gorm:"not null"`
	ApplyEnd            time.Time `gorm:"not null"`
	FileSubmissionStart time.Time `gorm:"not null"`
	FileSubmissionEnd   time.Time `gorm:"not null"`
	PaperSubmissionEnd  time.Time `gorm:"not null"`

	WrittenExamDate       *time.Time
	WrittenExamDisputeEnd *time.Time

	AllowPaperGrading              bool `gorm:"not null;default:false"`
	WrittenExamGradesPublic        bool `gorm:"not null;default:false"`
	WrittenExamDisputedGradesPublic bool `gorm:"not null;default:false"`

	UpdatedAt time.Time
}

// DefaultSessionSettings builds the lazily-created first row: every
// boundary on today's date and paper grading disallowed.
func DefaultSessionSettings(now time.Time) SessionSettings {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return SessionSettings{
		ID:                  1,
		SessionName:         now.Format("2006") + "-" + today.AddDate(1, 0, 0).Format("2006"),
		CurrentPromotion:    now.Format("2006"),
		ApplyStart:          today,
		ApplyEnd:            today,
		FileSubmissionStart: today,
		FileSubmissionEnd:   today,
		PaperSubmissionEnd:  today,
		AllowPaperGrading:   false,
	}
}
