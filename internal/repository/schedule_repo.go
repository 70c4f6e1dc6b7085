package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// ScheduleRepository exposes the timetable and exam schedule.
type ScheduleRepository interface {
	ListClasses(ctx context.Context) ([]models.ClassSession, error)
	ListExams(ctx context.Context) ([]models.ExamSlot, error)
	ReplaceClasses(ctx context.Context, classes []models.ClassSession) error
	ReplaceExams(ctx context.Context, exams []models.ExamSlot) error
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository constructs the repository implementation.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) ListClasses(ctx context.Context) ([]models.ClassSession, error) {
	var classes []models.ClassSession
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *scheduleRepository) ListExams(ctx context.Context) ([]models.ExamSlot, error) {
	var exams []models.ExamSlot
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *scheduleRepository) ReplaceClasses(ctx context.Context, classes []models.ClassSession) error {
	return replaceAll(ctx, r.db, &models.ClassSession{}, classes)
}

func (r *scheduleRepository) ReplaceExams(ctx context.Context, exams []models.ExamSlot) error {
	return replaceAll(ctx, r.db, &models.ExamSlot{}, exams)
}

// replaceAll swaps the contents of a fixture table inside one transaction.
func replaceAll[T any](ctx context.Context, db *gorm.DB, model interface{}, rows []T) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
