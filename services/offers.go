package services

import (
	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/models"

	"gorm.io/gorm"
)

// OfferService handles the upstream supervision workflow: teachers publish
// offers, students apply, staff decide. Acceptance is what produces a
// Paper.
type OfferService struct {
	DB      *gorm.DB
	Session *SessionService
}

func NewOfferService(db *gorm.DB, session *SessionService) *OfferService {
	return &OfferService{DB: db, Session: session}
}

func (s *OfferService) Create(teacherID uint, req dto.OfferInput) (models.Offer, error) {
	var domain models.Domain
	err := s.DB.First(&domain, req.DomainID).Error
	if err == gorm.ErrRecordNotFound {
		return models.Offer{}, notFound("domain")
	} else if err != nil {
		return models.Offer{}, err
	}

	var topics []models.Topic
	if err := s.DB.Where("id IN ?", req.TopicIDs).Find(&topics).Error; err != nil {
		return models.Offer{}, err
	}
	if len(topics) != len(req.TopicIDs) {
		return models.Offer{}, notFound("topic")
	}

	offer := models.Offer{
		TeacherID:   teacherID,
		DomainID:    domain.ID,
		Topics:      topics,
		Limit:       req.Limit,
		Description: req.Description,
	}
	if err := s.DB.Create(&offer).Error; err != nil {
		return models.Offer{}, err
	}
	return offer, nil
}

func (s *OfferService) List() ([]models.Offer, error) {
	var offers []models.Offer
	err := s.DB.Preload("Topics").Preload("Teacher").Preload("Domain").Order("id ASC").Find(&offers).Error
	return offers, err
}

// Apply files a student's application for an offer. Gated by the session's
// apply window; the student must be in the offer's domain, the offer must
// have free places and the student must not already supervise-match
// elsewhere (an existing paper) or have applied to the same offer.
func (s *OfferService) Apply(studentID uint, req dto.ApplicationInput) (models.Application, error) {
	if !s.Session.CanApply() {
		return models.Application{}, validationf("applications are closed in the current session")
	}

	var student models.User
	err := s.DB.Where("id = ? AND kind = ?", studentID, models.KindStudent).First(&student).Error
	if err == gorm.ErrRecordNotFound {
		return models.Application{}, notFound("student")
	} else if err != nil {
		return models.Application{}, err
	}

	var offer models.Offer
	err = s.DB.First(&offer, req.OfferID).Error
	if err == gorm.ErrRecordNotFound {
		return models.Application{}, notFound("offer")
	} else if err != nil {
		return models.Application{}, err
	}

	if student.DomainID == nil || *student.DomainID != offer.DomainID {
		return models.Application{}, validationf("offer is not available for your domain")
	}
	if !offer.HasFreePlaces() {
		return models.Application{}, validationf("offer has no free places left")
	}

	var paperCount int64
	if err := s.DB.Model(&models.Paper{}).Where("student_id = ?", studentID).Count(&paperCount).Error; err != nil {
		return models.Application{}, err
	}
	if paperCount > 0 {
		return models.Application{}, validationf("you already have a paper in this session")
	}

	var existing int64
	if err := s.DB.Model(&models.Application{}).
		Where("student_id = ? AND offer_id = ?", studentID, req.OfferID).
		Count(&existing).Error; err != nil {
		return models.Application{}, err
	}
	if existing > 0 {
		return models.Application{}, validationf("you already applied to this offer")
	}

	application := models.Application{
		StudentID:   studentID,
		OfferID:     req.OfferID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.DB.Create(&application).Error; err != nil {
		return models.Application{}, err
	}
	return application, nil
}

// Decide flips an application's acceptance state. The offer's taken-seat
// counter moves inside the same transaction as the flip, so a reader never
// observes the counter out of sync with the relationship. Acceptance also
// creates the student's paper and declines their other pending
// applications.
func (s *OfferService) Decide(applicationID uint, accept bool) (models.Application, error) {
	var application models.Application
	err := s.DB.Preload("Offer.Topics").Preload("Offer.Domain").First(&application, applicationID).Error
	if err == gorm.ErrRecordNotFound {
		return models.Application{}, notFound("application")
	} else if err != nil {
		return models.Application{}, err
	}
	if application.Accepted != nil {
		return models.Application{}, validationf("application has already been decided")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		application.Accepted = &accept
		if err := tx.Model(&models.Application{}).Where("id = ?", application.ID).
			Update("accepted", accept).Error; err != nil {
			return err
		}
		if !accept {
			return nil
		}

		// Guarded increment: the seat moves in the same transaction as the
		// acceptance flip, and only while a seat is actually free.
		res := tx.Model(&models.Offer{}).
			Where("id = ? AND taken_places < ?", application.OfferID, application.Offer.Limit).
			Update("taken_places", gorm.Expr("taken_places + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return validationf("offer has no free places left")
		}

		paper := models.Paper{
			Type:        application.Offer.Domain.PaperType,
			Title:       application.Title,
			Description: application.Description,
			TeacherID:   application.Offer.TeacherID,
			StudentID:   application.StudentID,
			Topics:      application.Offer.Topics,
		}
		if err := tx.Create(&paper).Error; err != nil {
			return err
		}

		declined := false
		return tx.Model(&models.Application{}).
			Where("student_id = ? AND id <> ? AND accepted IS NULL", application.StudentID, application.ID).
			Update("accepted", &declined).Error
	})
	if err != nil {
		return models.Application{}, err
	}
	return application, nil
}
