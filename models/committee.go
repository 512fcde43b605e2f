package models

import (
	"time"

	"gorm.io/gorm"
)

// Committee member roles.
const (
	RolePresident = "president"
	RoleSecretary = "secretary"
	RoleMember    = "member"
)

type Committee struct {
	gorm.Model
	Name                  string `gorm:"size:100;not null"`
	FinalGrades           bool   `gorm:"not null;default:false"`
	PublicScheduling      bool   `gorm:"not null;default:false"`
	PaperPresentationTime int    `gorm:"not null;default:15"` // minutes per paper

	Members      []CommitteeMember      `gorm:"foreignKey:CommitteeID"`
	Domains      []Domain               `gorm:"many2many:committee_domains;"`
	ActivityDays []CommitteeActivityDay `gorm:"foreignKey:CommitteeID"`
}

// CommitteeMember links a teacher to a committee with a role. Owned by the
// committee and removed with it.
type CommitteeMember struct {
	CommitteeID uint   `gorm:"primaryKey;autoIncrement:false"`
	TeacherID   uint   `gorm:"primaryKey;autoIncrement:false"`
	Role        string `gorm:"size:20;not null"`

	Teacher User `gorm:"foreignKey:TeacherID"`
}

type CommitteeActivityDay struct {
	ID          uint `gorm:"primaryKey"`
	CommitteeID uint `gorm:"not null;index"`
	Location    string `gorm:"size:100"`
	StartTime   time.Time
}
