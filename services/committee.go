package services

import (
	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/models"

	"gorm.io/gorm"
)

// CommitteeService validates and persists grading committees. The
// composition rules are a hard gate: nothing is written unless the member
// roster and the domain set pass.
type CommitteeService struct {
	DB *gorm.DB
}

func NewCommitteeService(db *gorm.DB) *CommitteeService {
	return &CommitteeService{DB: db}
}

// ValidateAndBuild checks the proposed composition and resolves every
// referenced teacher and domain, returning the committee ready to persist.
// Rules: exactly one president, exactly one secretary, at least two plain
// members; all domains share the same type; every member id is an existing
// teacher.
func (s *CommitteeService) ValidateAndBuild(req dto.CommitteeInput) (models.Committee, error) {
	var presidents, secretaries, members int
	for _, m := range req.Members {
		switch m.Role {
		case models.RolePresident:
			presidents++
		case models.RoleSecretary:
			secretaries++
		case models.RoleMember:
			members++
		default:
			return models.Committee{}, validationf("unknown committee role %q", m.Role)
		}
	}
	if presidents != 1 {
		return models.Committee{}, validationf("committee must have exactly one president")
	}
	if secretaries != 1 {
		return models.Committee{}, validationf("committee must have exactly one secretary")
	}
	if members < 2 {
		return models.Committee{}, validationf("committee must have at least two members")
	}

	var domains []models.Domain
	if err := s.DB.Where("id IN ?", req.DomainIDs).Find(&domains).Error; err != nil {
		return models.Committee{}, err
	}
	if len(domains) != len(req.DomainIDs) {
		return models.Committee{}, notFound("domain")
	}
	for _, d := range domains {
		if d.Type != domains[0].Type {
			return models.Committee{}, validationf("committee domains must all have the same type")
		}
	}

	committee := models.Committee{
		Name:                  req.Name,
		PublicScheduling:      req.PublicScheduling,
		PaperPresentationTime: req.PaperPresentationTime,
		Domains:               domains,
	}
	if committee.PaperPresentationTime == 0 {
		committee.PaperPresentationTime = 15
	}
	for _, m := range req.Members {
		var teacher models.User
		err := s.DB.Where("id = ? AND kind = ?", m.TeacherID, models.KindTeacher).First(&teacher).Error
		if err == gorm.ErrRecordNotFound {
			return models.Committee{}, notFound("teacher")
		} else if err != nil {
			return models.Committee{}, err
		}
		committee.Members = append(committee.Members, models.CommitteeMember{
			TeacherID: teacher.ID,
			Role:      m.Role,
			Teacher:   teacher,
		})
	}
	return committee, nil
}

func (s *CommitteeService) Create(req dto.CommitteeInput) (models.Committee, error) {
	committee, err := s.ValidateAndBuild(req)
	if err != nil {
		return models.Committee{}, err
	}
	if err := s.DB.Create(&committee).Error; err != nil {
		return models.Committee{}, err
	}
	return committee, nil
}

// Update replaces the whole composition: members and domain links are
// rewritten from the request, not patched.
func (s *CommitteeService) Update(id uint, req dto.CommitteeInput) (models.Committee, error) {
	var existing models.Committee
	if err := s.DB.First(&existing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.Committee{}, notFound("committee")
		}
		return models.Committee{}, err
	}

	committee, err := s.ValidateAndBuild(req)
	if err != nil {
		return models.Committee{}, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("committee_id = ?", id).Delete(&models.CommitteeMember{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM committee_domains WHERE committee_id = ?", id).Error; err != nil {
			return err
		}
		existing.Name = committee.Name
		existing.PublicScheduling = committee.PublicScheduling
		existing.PaperPresentationTime = committee.PaperPresentationTime
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		for i := range committee.Members {
			committee.Members[i].CommitteeID = id
		}
		if err := tx.Create(&committee.Members).Error; err != nil {
			return err
		}
		return tx.Model(&existing).Association("Domains").Append(committee.Domains)
	})
	if err != nil {
		return models.Committee{}, err
	}
	return s.Get(id)
}

func (s *CommitteeService) Get(id uint) (models.Committee, error) {
	var committee models.Committee
	err := s.DB.
		Preload("Members.Teacher").
		Preload("Domains").
		Preload("ActivityDays").
		First(&committee, id).Error
	if err == gorm.ErrRecordNotFound {
		return models.Committee{}, notFound("committee")
	}
	return committee, err
}

func (s *CommitteeService) List() ([]models.Committee, error) {
	var committees []models.Committee
	err := s.DB.
		Preload("Members.Teacher").
		Preload("Domains").
		Order("id ASC").
		Find(&committees).Error
	return committees, err
}

// Delete refuses to remove a committee that still holds papers; the
// papers must be reassigned or unassigned first.
func (s *CommitteeService) Delete(id uint) error {
	var committee models.Committee
	if err := s.DB.First(&committee, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return notFound("committee")
		}
		return err
	}
	var paperCount int64
	if err := s.DB.Model(&models.Paper{}).Where("committee_id = ?", id).Count(&paperCount).Error; err != nil {
		return err
	}
	if paperCount > 0 {
		return validationf("committee still has %d assigned papers", paperCount)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("committee_id = ?", id).Delete(&models.CommitteeMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("committee_id = ?", id).Delete(&models.CommitteeActivityDay{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM committee_domains WHERE committee_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&committee).Error
	})
}
