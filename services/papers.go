package services

import (
	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/models"

	"gorm.io/gorm"
)

type PaperService struct {
	DB      *gorm.DB
	Session *SessionService
}

func NewPaperService(db *gorm.DB, session *SessionService) *PaperService {
	return &PaperService{DB: db, Session: session}
}

func (s *PaperService) GetByStudent(studentID uint) (models.Paper, error) {
	var paper models.Paper
	err := s.DB.
		Preload("Topics").
		Preload("Teacher").
		Preload("Committee").
		Preload("Grades").
		Where("student_id = ?", studentID).
		First(&paper).Error
	if err == gorm.ErrRecordNotFound {
		return models.Paper{}, notFound("paper")
	}
	return paper, err
}

// Submit marks the student's paper as formally handed in, creating the
// submission record and the paper linkage in one transaction. Gated by the
// paper-file window.
func (s *PaperService) Submit(studentID uint) (models.Paper, error) {
	if !s.Session.CanUploadPaperFiles() {
		return models.Paper{}, validationf("paper submission is closed in the current session")
	}
	paper, err := s.GetByStudent(studentID)
	if err != nil {
		return models.Paper{}, err
	}
	if paper.SubmissionID != nil {
		return models.Paper{}, validationf("paper has already been submitted")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var submission models.Submission
		err := tx.Where("student_id = ?", studentID).First(&submission).Error
		if err == gorm.ErrRecordNotFound {
			submission = models.Submission{StudentID: studentID, IsSubmitted: true}
			if err := tx.Create(&submission).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			if err := tx.Model(&submission).Update("is_submitted", true).Error; err != nil {
				return err
			}
		}
		paper.SubmissionID = &submission.ID
		return tx.Model(&models.Paper{}).Where("id = ?", paper.ID).
			Update("submission_id", submission.ID).Error
	})
	if err != nil {
		return models.Paper{}, err
	}
	return paper, nil
}

// Unsubmit withdraws the paper while the window is still open. Not allowed
// once a committee holds the paper.
func (s *PaperService) Unsubmit(studentID uint) (models.Paper, error) {
	if !s.Session.CanUploadPaperFiles() {
		return models.Paper{}, validationf("paper submission is closed in the current session")
	}
	paper, err := s.GetByStudent(studentID)
	if err != nil {
		return models.Paper{}, err
	}
	if paper.SubmissionID == nil {
		return models.Paper{}, validationf("paper has not been submitted")
	}
	if paper.CommitteeID != nil {
		return models.Paper{}, validationf("paper is already assigned to a committee")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Submission{}).Where("id = ?", *paper.SubmissionID).
			Update("is_submitted", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Paper{}).Where("id = ?", paper.ID).
			Update("submission_id", nil).Error
	})
	if err != nil {
		return models.Paper{}, err
	}
	paper.SubmissionID = nil
	return paper, nil
}

// Review records the staff verdict on a submitted paper.
func (s *PaperService) Review(paperID uint, req dto.PaperReviewInput) (models.Paper, error) {
	var paper models.Paper
	err := s.DB.First(&paper, paperID).Error
	if err == gorm.ErrRecordNotFound {
		return models.Paper{}, notFound("paper")
	} else if err != nil {
		return models.Paper{}, err
	}
	if paper.SubmissionID == nil {
		return models.Paper{}, validationf("paper has not been submitted yet")
	}
	paper.IsValid = &req.IsValid
	if err := s.DB.Model(&paper).Update("is_valid", req.IsValid).Error; err != nil {
		return models.Paper{}, err
	}
	return paper, nil
}

// CommitteePaperRow is a catalog row: the paper plus its aggregated grade
// and display state.
type CommitteePaperRow struct {
	Paper        models.Paper `json:"paper"`
	GradeAverage *float64     `json:"gradeAverage"`
	GradeState   string       `json:"gradeState"`
}

// ListByCommittee returns the committee's catalog with the authoritative
// average and the pending/absent distinction resolved per paper.
func (s *PaperService) ListByCommittee(committeeID uint) ([]CommitteePaperRow, error) {
	var committee models.Committee
	err := s.DB.First(&committee, committeeID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, notFound("committee")
	} else if err != nil {
		return nil, err
	}

	var papers []models.Paper
	err = s.DB.
		Preload("Topics").
		Preload("Student").
		Preload("Teacher").
		Preload("Grades").
		Where("committee_id = ?", committeeID).
		Order("id ASC").
		Find(&papers).Error
	if err != nil {
		return nil, err
	}

	rows := make([]CommitteePaperRow, 0, len(papers))
	for _, p := range papers {
		avg := PaperAverageOf(p.Grades)
		rows = append(rows, CommitteePaperRow{
			Paper:        p,
			GradeAverage: avg,
			GradeState:   PaperGradeDisplay(avg, committee.FinalGrades),
		})
	}
	return rows, nil
}
