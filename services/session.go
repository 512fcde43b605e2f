package services

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/haginus/bachelor-backend-sub001/config"
	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/models"

	"gorm.io/gorm"
)

// SettingsCache holds the session settings singleton between requests.
// Every successful write replaces the cached value before returning, so a
// stale read lives at most for the duration of one in-flight write.
type SettingsCache struct {
	mu    sync.RWMutex
	value *models.SessionSettings
}

func (c *SettingsCache) Get() *models.SessionSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *SettingsCache) Put(s models.SessionSettings) {
	c.mu.Lock()
	c.value = &s
	c.mu.Unlock()
}

func (c *SettingsCache) Invalidate() {
	c.mu.Lock()
	c.value = nil
	c.mu.Unlock()
}

// SessionService owns the session settings row and gates every
// time-sensitive operation against the configured date ranges.
type SessionService struct {
	DB    *gorm.DB
	Cache *SettingsCache
	Now   func() time.Time
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db, Cache: &SettingsCache{}, Now: time.Now}
}

// GetSettings returns the singleton row, creating the default one on first
// read if none exists yet.
func (s *SessionService) GetSettings() (models.SessionSettings, error) {
	if cached := s.Cache.Get(); cached != nil {
		return *cached, nil
	}
	var settings models.SessionSettings
	err := s.DB.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.DefaultSessionSettings(s.Now())
		if err := s.DB.Create(&settings).Error; err != nil {
			return models.SessionSettings{}, err
		}
	} else if err != nil {
		return models.SessionSettings{}, err
	}
	s.Cache.Put(settings)
	return settings, nil
}

// UpdateSettings validates the date orderings in a fixed order, failing on
// the first violation, then merges the change into the current row.
func (s *SessionService) UpdateSettings(req dto.SessionSettingsUpdate) (models.SessionSettings, error) {
	if req.ApplyEnd.Before(req.ApplyStart) {
		return models.SessionSettings{}, validationf("apply end date must not precede apply start date")
	}
	if req.FileSubmissionStart.Before(req.ApplyStart) {
		return models.SessionSettings{}, validationf("file submission start date must not precede apply start date")
	}
	if req.FileSubmissionEnd.Before(req.FileSubmissionStart) {
		return models.SessionSettings{}, validationf("file submission end date must not precede file submission start date")
	}
	if req.PaperSubmissionEnd.Before(req.FileSubmissionStart) {
		return models.SessionSettings{}, validationf("paper submission end date must not precede file submission start date")
	}

	settings, err := s.GetSettings()
	if err != nil {
		return models.SessionSettings{}, err
	}

	settings.SessionName = req.SessionName
	settings.CurrentPromotion = req.CurrentPromotion
	settings.ApplyStart = req.ApplyStart
	settings.ApplyEnd = req.ApplyEnd
	settings.FileSubmissionStart = req.FileSubmissionStart
	settings.FileSubmissionEnd = req.FileSubmissionEnd
	settings.PaperSubmissionEnd = req.PaperSubmissionEnd
	settings.WrittenExamDate = req.WrittenExamDate
	settings.WrittenExamDisputeEnd = req.WrittenExamDisputeEnd
	settings.AllowPaperGrading = req.AllowPaperGrading
	settings.WrittenExamGradesPublic = req.WrittenExamGradesPublic
	settings.WrittenExamDisputedGradesPublic = req.WrittenExamDisputedGradesPublic

	if err := s.DB.Save(&settings).Error; err != nil {
		return models.SessionSettings{}, err
	}
	s.Cache.Put(settings)
	return settings, nil
}

// Date range checks are inclusive on both ends at day granularity: the
// whole calendar day of the end date still counts as inside the range.
func inRange(now, start, end time.Time) bool {
	return !now.Before(dayStart(start)) && now.Before(dayStart(end).AddDate(0, 0, 1))
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *SessionService) CanApply() bool {
	settings, err := s.GetSettings()
	if err != nil {
		log.Println("[session] settings unavailable:", err)
		return false
	}
	return inRange(s.Now(), settings.ApplyStart, settings.ApplyEnd)
}

func (s *SessionService) CanUploadSecretaryFiles() bool {
	settings, err := s.GetSettings()
	if err != nil {
		log.Println("[session] settings unavailable:", err)
		return false
	}
	return inRange(s.Now(), settings.FileSubmissionStart, settings.FileSubmissionEnd)
}

func (s *SessionService) CanUploadPaperFiles() bool {
	settings, err := s.GetSettings()
	if err != nil {
		log.Println("[session] settings unavailable:", err)
		return false
	}
	return inRange(s.Now(), settings.FileSubmissionStart, settings.PaperSubmissionEnd)
}

// BeginNewSession performs the irreversible end-of-session rollover inside
// one transaction: graduating students (paper average >= 6) leave the
// roster with their papers, everything session-scoped is purged, remaining
// papers are reset to unreviewed/unsubmitted, and a fresh default settings
// row replaces the old one. On any failure the previous session's data
// stays fully intact.
func (s *SessionService) BeginNewSession() (models.SessionSettings, error) {
	fresh := models.DefaultSessionSettings(s.Now())

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}

		var papers []models.Paper
		if err := tx.Preload("Grades").Find(&papers).Error; err != nil {
			return err
		}

		var graduatedPaperIDs, graduatedStudentIDs []uint
		for _, p := range papers {
			avg := PaperAverageOf(p.Grades)
			if avg != nil && *avg >= 6 {
				graduatedPaperIDs = append(graduatedPaperIDs, p.ID)
				graduatedStudentIDs = append(graduatedStudentIDs, p.StudentID)
			}
		}
		if len(graduatedPaperIDs) > 0 {
			if err := tx.Exec("DELETE FROM paper_topics WHERE paper_id IN ?", graduatedPaperIDs).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", graduatedPaperIDs).Delete(&models.Paper{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", graduatedStudentIDs).Delete(&models.User{}).Error; err != nil {
				return err
			}
		}

		// Remaining students keep their paper but start the new session
		// unreviewed, unsubmitted and unassigned.
		if err := tx.Model(&models.Paper{}).Where("1 = 1").Updates(map[string]interface{}{
			"is_valid":          nil,
			"submission_id":     nil,
			"committee_id":      nil,
			"scheduled_grading": nil,
		}).Error; err != nil {
			return err
		}

		purges := []interface{}{
			&models.WrittenExamGrade{},
			&models.Submission{},
			&models.StudentExtraData{},
			&models.Application{},
			&models.Offer{},
			&models.Document{},
			&models.DocumentReuploadRequest{},
			&models.PaperGrade{},
			&models.CommitteeActivityDay{},
			&models.CommitteeMember{},
			&models.Committee{},
		}
		for _, table := range purges {
			if err := tx.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM offer_topics").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM committee_domains").Error; err != nil {
			return err
		}

		if err := tx.Where("1 = 1").Delete(&models.SessionSettings{}).Error; err != nil {
			return err
		}
		return tx.Create(&fresh).Error
	})
	if err != nil {
		return models.SessionSettings{}, err
	}

	s.Cache.Put(fresh)

	// The stored documents cannot participate in the rollback, so the tree
	// is only removed once the transaction has committed.
	if err := os.RemoveAll(config.StoragePath); err != nil {
		log.Println("[session] could not remove document storage:", err)
	}
	return fresh, nil
}
