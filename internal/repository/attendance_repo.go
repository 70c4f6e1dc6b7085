package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// AttendanceRecordFilter narrows the date-wise ledger.
type AttendanceRecordFilter struct {
	SubjectCode string
	Status      string
}

// AttendanceRepository exposes per-subject counts and the dated ledger.
type AttendanceRepository interface {
	ListSubjects(ctx context.Context) ([]models.SubjectAttendance, error)
	ListRecords(ctx context.Context, filter AttendanceRecordFilter) ([]models.AttendanceRecord, error)
	ReplaceSubjects(ctx context.Context, subjects []models.SubjectAttendance) error
	ReplaceRecords(ctx context.Context, records []models.AttendanceRecord) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs the repository implementation.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListSubjects(ctx context.Context) ([]models.SubjectAttendance, error) {
	var subjects []models.SubjectAttendance
	if err := r.db.WithContext(ctx).Order("subject_code ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *attendanceRepository) ListRecords(ctx context.Context, filter AttendanceRecordFilter) ([]models.AttendanceRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.AttendanceRecord{})
	if code := strings.TrimSpace(filter.SubjectCode); code != "" {
		query = query.Where("subject_code = ?", code)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var records []models.AttendanceRecord
	if err := query.Order("date DESC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) ReplaceSubjects(ctx context.Context, subjects []models.SubjectAttendance) error {
	return replaceAll(ctx, r.db, &models.SubjectAttendance{}, subjects)
}

func (r *attendanceRepository) ReplaceRecords(ctx context.Context, records []models.AttendanceRecord) error {
	return replaceAll(ctx, r.db, &models.AttendanceRecord{}, records)
}
