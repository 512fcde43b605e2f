package models

import "gorm.io/gorm"

// Offer is a teacher's supervision slot set for a domain. TakenPlaces is a
// maintained counter: every acceptance flip adjusts it inside the same
// transaction, never out of band.
type Offer struct {
	gorm.Model
	TeacherID uint `gorm:"not null;index"`
	Teacher   User `gorm:"foreignKey:TeacherID"`
	DomainID  uint `gorm:"not null;index"`
	Domain    Domain `gorm:"foreignKey:DomainID"`

	Topics []Topic `gorm:"many2many:offer_topics;"`

	Limit       int    `gorm:"not null"`
	TakenPlaces int    `gorm:"not null;default:0"`
	Description string `gorm:"type:text"`
}

func (o *Offer) HasFreePlaces() bool {
	return o.TakenPlaces < o.Limit
}

// Application is a student's request to take an offer. Accepted is
// tri-state: null = pending, true = accepted (a Paper exists from then on),
// false = declined.
type Application struct {
	gorm.Model
	StudentID uint `gorm:"not null;index"`
	Student   User `gorm:"foreignKey:StudentID"`
	OfferID   uint `gorm:"not null;index"`
	Offer     Offer `gorm:"foreignKey:OfferID"`

	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Accepted    *bool
}
