package models

import (
	"time"

	"gorm.io/gorm"
)

// User kinds. A single table holds every account; Kind discriminates and
// the student-specific columns stay empty for the rest.
const (
	KindAdmin     = "admin"
	KindTeacher   = "teacher"
	KindStudent   = "student"
	KindSecretary = "secretary"
)

type User struct {
	gorm.Model

	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	CNP       string `gorm:"size:20;column:cnp"`

	Email    string `gorm:"size:100;not null;unique"`
	Password string `gorm:"size:100;not null"`
	Kind     string `gorm:"size:20;not null"`

	// Student payload.
	DomainID          *uint
	Domain            *Domain `gorm:"foreignKey:DomainID"`
	Group             string  `gorm:"size:20"`
	Promotion         string  `gorm:"size:20"`
	Specialization    string  `gorm:"size:100"`
	MatriculationYear string  `gorm:"size:20"`

	RefreshToken string `gorm:"type:text"`
}

func (u *User) FullName() string {
	return u.LastName + " " + u.FirstName
}

// StudentExtraData holds the extended student profile used for document
// generation. Purged wholesale at session reset.
type StudentExtraData struct {
	ID            uint `gorm:"primaryKey"`
	UserID        uint `gorm:"not null;uniqueIndex"`
	BirthLastName string `gorm:"size:100"`
	ParentInitial string `gorm:"size:10"`
	FatherName    string `gorm:"size:100"`
	MotherName    string `gorm:"size:100"`
	DateOfBirth   *time.Time
	CitizenShip   string `gorm:"size:100"`
	Ethnicity     string `gorm:"size:100"`
	PlaceOfBirth  string `gorm:"size:200"`
	MobilePhone   string `gorm:"size:20"`
	PersonalEmail string `gorm:"size:100"`
	Address       string `gorm:"size:255"`
}
