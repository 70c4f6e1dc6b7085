package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// SyllabusRepository exposes syllabus modules per subject.
type SyllabusRepository interface {
	List(ctx context.Context, subjectCode string) ([]models.SyllabusModule, error)
	Replace(ctx context.Context, modules []models.SyllabusModule) error
}

type syllabusRepository struct {
	db *gorm.DB
}

// NewSyllabusRepository constructs the repository implementation.
func NewSyllabusRepository(db *gorm.DB) SyllabusRepository {
	return &syllabusRepository{db: db}
}

func (r *syllabusRepository) List(ctx context.Context, subjectCode string) ([]models.SyllabusModule, error) {
	query := r.db.WithContext(ctx).Model(&models.SyllabusModule{})
	if code := strings.TrimSpace(subjectCode); code != "" {
		query = query.Where("subject_code = ?", code)
	}

	var modules []models.SyllabusModule
	if err := query.Order("position ASC, id ASC").Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *syllabusRepository) Replace(ctx context.Context, modules []models.SyllabusModule) error {
	return replaceAll(ctx, r.db, &models.SyllabusModule{}, modules)
}
