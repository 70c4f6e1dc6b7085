package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// Migrate creates the session store tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.StudentProfile{},
		&models.ClassSession{},
		&models.ExamSlot{},
		&models.SubjectAttendance{},
		&models.AttendanceRecord{},
		&models.AssessmentTask{},
		&models.SemesterResult{},
		&models.Notice{},
		&models.FeeLineItem{},
		&models.SyllabusModule{},
		&models.AssistantMessage{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
