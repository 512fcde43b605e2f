package database

import (
	"fmt"
	"log"

	"github.com/haginus/bachelor-backend-sub001/config"
	"github.com/haginus/bachelor-backend-sub001/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() error {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		config.DBHost,
		config.DBUser,
		config.DBPassword,
		config.DBName,
		config.DBPort,
		config.DBSSLMode,
		config.DBTimeZone,
	)
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := Migrate(DB); err != nil {
		return err
	}
	log.Println("[db] connected, migrations applied")
	return nil
}

// Migrate runs the auto-migrations. Split out so tests can run the same
// schema against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.StudentExtraData{},
		&models.Domain{},
		&models.Topic{},
		&models.Offer{},
		&models.Application{},
		&models.Committee{},
		&models.CommitteeMember{},
		&models.CommitteeActivityDay{},
		&models.Paper{},
		&models.PaperGrade{},
		&models.Submission{},
		&models.WrittenExamGrade{},
		&models.Document{},
		&models.DocumentReuploadRequest{},
		&models.SessionSettings{},
		&models.ActivityLog{},
	)
}

func Close() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Println("[db] error getting sqlDB:", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("[db] error closing: %v", err)
	}
}
