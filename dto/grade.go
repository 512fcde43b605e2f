package dto

// WrittenExamGradeInput carries a grading update for a written-exam
// submission. Fields are pointers so an update can touch only the dispute
// part while keeping the recorded initial grade.
type WrittenExamGradeInput struct {
	InitialGrade *int `json:"initialGrade" validate:"omitempty,min=0,max=10"`
	IsDisputed   bool `json:"isDisputed"`
	DisputeGrade *int `json:"disputeGrade" validate:"omitempty,min=1,max=10"`
}

type PaperGradeInput struct {
	ForPaper        int `json:"forPaper" validate:"required,min=1,max=10"`
	ForPresentation int `json:"forPresentation" validate:"required,min=1,max=10"`
}
