package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is the audit trail of staff-facing mutations. Deleted
// unconditionally when a new session begins.
type ActivityLog struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    uint           `gorm:"not null;index"`
	Action    string         `gorm:"size:100;not null"`
	Meta      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
}
