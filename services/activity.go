package services

import (
	"encoding/json"
	"log"

	"github.com/haginus/bachelor-backend-sub001/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LogActivity appends an audit row for a staff-facing mutation. Audit
// failures are logged, not surfaced: the triggering operation has already
// succeeded.
func LogActivity(db *gorm.DB, userID uint, action string, meta map[string]interface{}) {
	var payload datatypes.JSON
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			log.Println("[activity] could not encode meta:", err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}
	entry := models.ActivityLog{UserID: userID, Action: action, Meta: payload}
	if err := db.Create(&entry).Error; err != nil {
		log.Println("[activity] could not record:", err)
	}
}
