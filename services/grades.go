package services

import (
	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Display states for a paper's grade. Until the committee closes grading
// (FinalGrades), an ungraded paper is merely pending; afterwards it counts
// as absent, which downstream catalogs treat as non-graduating.
const (
	GradeStateGraded  = "graded"
	GradeStatePending = "pending"
	GradeStateAbsent  = "absent"
)

type GradeService struct {
	DB      *gorm.DB
	Session *SessionService
}

func NewGradeService(db *gorm.DB, session *SessionService) *GradeService {
	return &GradeService{DB: db, Session: session}
}

// PaperAverageOf is the authoritative paper average: the mean of every
// submitted sub-score (paper and presentation) across all graders. Members
// who have not graded contribute nothing; with no grades at all the
// average is nil.
func PaperAverageOf(grades []models.PaperGrade) *float64 {
	if len(grades) == 0 {
		return nil
	}
	sum := 0
	for _, g := range grades {
		sum += g.ForPaper + g.ForPresentation
	}
	avg := float64(sum) / float64(len(grades)*2)
	return &avg
}

// PaperGradeDisplay resolves the pending/absent distinction for an
// average computed by PaperAverageOf.
func PaperGradeDisplay(avg *float64, finalGrades bool) string {
	if avg != nil {
		return GradeStateGraded
	}
	if finalGrades {
		return GradeStateAbsent
	}
	return GradeStatePending
}

// ComputePaperAverage loads the paper's grades and returns the average
// along with its display state.
func (s *GradeService) ComputePaperAverage(paperID uint) (*float64, string, error) {
	var paper models.Paper
	err := s.DB.Preload("Grades").Preload("Committee").First(&paper, paperID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, "", notFound("paper")
	} else if err != nil {
		return nil, "", err
	}
	avg := PaperAverageOf(paper.Grades)
	finalGrades := paper.Committee != nil && paper.Committee.FinalGrades
	return avg, PaperGradeDisplay(avg, finalGrades), nil
}

// RecordPaperGrade upserts one grading member's score sheet for a paper.
// The grader must sit on the paper's committee in a grading role (the
// secretary does not grade), and the session must currently allow paper
// grading.
func (s *GradeService) RecordPaperGrade(teacherID, paperID uint, req dto.PaperGradeInput) (models.PaperGrade, error) {
	settings, err := s.Session.GetSettings()
	if err != nil {
		return models.PaperGrade{}, err
	}
	if !settings.AllowPaperGrading {
		return models.PaperGrade{}, validationf("paper grading is not open in the current session")
	}
	if req.ForPaper < 1 || req.ForPaper > 10 || req.ForPresentation < 1 || req.ForPresentation > 10 {
		return models.PaperGrade{}, validationf("grades must be between 1 and 10")
	}

	var paper models.Paper
	err = s.DB.First(&paper, paperID).Error
	if err == gorm.ErrRecordNotFound {
		return models.PaperGrade{}, notFound("paper")
	} else if err != nil {
		return models.PaperGrade{}, err
	}
	if paper.CommitteeID == nil {
		return models.PaperGrade{}, validationf("paper is not assigned to a committee")
	}

	var member models.CommitteeMember
	err = s.DB.Where("committee_id = ? AND teacher_id = ?", *paper.CommitteeID, teacherID).First(&member).Error
	if err == gorm.ErrRecordNotFound {
		return models.PaperGrade{}, validationf("you are not a member of this paper's committee")
	} else if err != nil {
		return models.PaperGrade{}, err
	}
	if member.Role == models.RoleSecretary {
		return models.PaperGrade{}, validationf("the committee secretary does not grade papers")
	}

	grade := models.PaperGrade{
		CommitteeID:     *paper.CommitteeID,
		TeacherID:       teacherID,
		PaperID:         paperID,
		ForPaper:        req.ForPaper,
		ForPresentation: req.ForPresentation,
	}
	err = s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "committee_id"}, {Name: "teacher_id"}, {Name: "paper_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"for_paper", "for_presentation"}),
	}).Create(&grade).Error
	if err != nil {
		return models.PaperGrade{}, err
	}
	return grade, nil
}

// GradeSubmission records or updates a written-exam grade. An update may
// carry only the dispute part; the recorded initial grade then stays.
func (s *GradeService) GradeSubmission(submissionID uint, req dto.WrittenExamGradeInput) (models.WrittenExamGrade, error) {
	var submission models.Submission
	err := s.DB.Preload("Grade").First(&submission, submissionID).Error
	if err == gorm.ErrRecordNotFound {
		return models.WrittenExamGrade{}, notFound("submission")
	} else if err != nil {
		return models.WrittenExamGrade{}, err
	}

	grade := models.WrittenExamGrade{SubmissionID: submission.ID}
	if submission.Grade != nil {
		grade = *submission.Grade
	}

	if req.InitialGrade != nil {
		if *req.InitialGrade < 0 || *req.InitialGrade > 10 {
			return models.WrittenExamGrade{}, validationf("initial grade must be between 0 and 10")
		}
		grade.InitialGrade = *req.InitialGrade
	} else if submission.Grade == nil {
		return models.WrittenExamGrade{}, validationf("an initial grade is required")
	}
	grade.IsDisputed = req.IsDisputed
	if req.DisputeGrade != nil {
		if !req.IsDisputed {
			return models.WrittenExamGrade{}, validationf("a dispute grade requires an open dispute")
		}
		if grade.InitialGrade == 0 {
			return models.WrittenExamGrade{}, validationf("an absent student cannot dispute the grade")
		}
		if *req.DisputeGrade < 1 || *req.DisputeGrade > 10 {
			return models.WrittenExamGrade{}, validationf("dispute grade must be between 1 and 10")
		}
		grade.DisputeGrade = req.DisputeGrade
	} else {
		grade.DisputeGrade = nil
	}

	if err := s.DB.Save(&grade).Error; err != nil {
		return models.WrittenExamGrade{}, err
	}
	return grade, nil
}

// ComputeWrittenExamFinal resolves the authoritative written-exam grade.
// An initial grade of 0 always means absent, regardless of disputes. Once
// disputes close, the final grade is the greater of the initial and the
// dispute grade.
func ComputeWrittenExamFinal(g models.WrittenExamGrade, asOfDisputes bool) *int {
	if g.InitialGrade == 0 {
		return nil
	}
	final := g.InitialGrade
	if asOfDisputes && g.DisputeGrade != nil && *g.DisputeGrade > final {
		final = *g.DisputeGrade
	}
	return &final
}

// VisibleWrittenExamGrade is what a non-privileged viewer may see given
// the session's disclosure flags. A student never sees a dispute outcome
// before the configured disclosure, even though the value already exists
// in storage.
func VisibleWrittenExamGrade(g models.WrittenExamGrade, settings models.SessionSettings, privileged bool) *int {
	if privileged {
		return ComputeWrittenExamFinal(g, true)
	}
	if !settings.WrittenExamGradesPublic {
		return nil
	}
	return ComputeWrittenExamFinal(g, settings.WrittenExamDisputedGradesPublic)
}
