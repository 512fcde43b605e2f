package models

import "gorm.io/gorm"

// Domain types and the paper types they produce.
const (
	DomainTypeBachelor = "bachelor"
	DomainTypeMaster   = "master"

	PaperTypeBachelor = "bachelor"
	PaperTypeDiploma  = "diploma"
	PaperTypeMaster   = "master"
)

// Domain is a study-program classification. Committees and papers are only
// compatible within domains of the same Type.
type Domain struct {
	gorm.Model
	Name          string `gorm:"size:100;not null"`
	Type          string `gorm:"size:20;not null"` // bachelor, master
	PaperType     string `gorm:"size:20;not null"` // bachelor, diploma, master
	HasWrittenExam bool  `gorm:"not null;default:false"`
}

type Topic struct {
	gorm.Model
	Name string `gorm:"size:100;not null;unique"`
}
