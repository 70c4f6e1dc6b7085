package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// ProfileRepository persists the student identity record.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uint) (models.StudentProfile, error)
	GetByStudentNumber(ctx context.Context, number string) (models.StudentProfile, error)
	Upsert(ctx context.Context, profile *models.StudentProfile) error
	Save(ctx context.Context, profile *models.StudentProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository constructs a profile repository backed by GORM.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id uint) (models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return models.StudentProfile{}, err
	}
	return profile, nil
}

func (r *profileRepository) GetByStudentNumber(ctx context.Context, number string) (models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.db.WithContext(ctx).Where("student_number = ?", number).First(&profile).Error; err != nil {
		return models.StudentProfile{}, err
	}
	return profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_number"}},
		UpdateAll: true,
	}).Create(profile).Error
}

func (r *profileRepository) Save(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
