package models

import (
	"time"

	"gorm.io/gorm"
)

// Document is an uploaded or generated file attached to a paper. Rendering
// and delivery live outside this service; only the record and the stored
// path are kept here.
type Document struct {
	gorm.Model
	PaperID  uint   `gorm:"not null;index"`
	Name     string `gorm:"size:100;not null"` // logical name, e.g. sign_up_form
	Category string `gorm:"size:50;not null"`  // secretary_files, paper_files
	Type     string `gorm:"size:20;not null"`  // generated, signed, copy
	MimeType string `gorm:"size:100;not null"`
	FilePath string `gorm:"size:255;not null"`
	UploadedByID uint
}

type DocumentReuploadRequest struct {
	ID           uint      `gorm:"primaryKey"`
	PaperID      uint      `gorm:"not null;index"`
	DocumentName string    `gorm:"size:100;not null"`
	Comment      string    `gorm:"type:text"`
	Deadline     time.Time
	CreatedAt    time.Time
}
