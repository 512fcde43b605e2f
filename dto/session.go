package dto

import "time"

type SessionSettingsUpdate struct {
	SessionName      string `json:"sessionName" validate:"required"`
	CurrentPromotion string `json:"currentPromotion" validate:"required"`

	ApplyStart          time.Time `json:"applyStart" validate:"required"`
	ApplyEnd            time.Time `json:"applyEnd" validate:"required"`
	FileSubmissionStart time.Time `json:"fileSubmissionStart" validate:"required"`
	FileSubmissionEnd   time.Time `json:"fileSubmissionEnd" validate:"required"`
	PaperSubmissionEnd  time.Time `json:"paperSubmissionEnd" validate:"required"`

	WrittenExamDate       *time.Time `json:"writtenExamDate"`
	WrittenExamDisputeEnd *time.Time `json:"writtenExamDisputeEnd"`

	AllowPaperGrading               bool `json:"allowPaperGrading"`
	WrittenExamGradesPublic         bool `json:"writtenExamGradesPublic"`
	WrittenExamDisputedGradesPublic bool `json:"writtenExamDisputedGradesPublic"`
}
