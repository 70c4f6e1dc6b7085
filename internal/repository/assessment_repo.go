package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// AssessmentFilter narrows assessment queries.
type AssessmentFilter struct {
	SubjectCode string
	Submitted   *bool
	Graded      *bool
}

// AssessmentRepository exposes assessments and semester results.
type AssessmentRepository interface {
	List(ctx context.Context, filter AssessmentFilter) ([]models.AssessmentTask, error)
	ListSemesters(ctx context.Context) ([]models.SemesterResult, error)
	ReplaceAssessments(ctx context.Context, tasks []models.AssessmentTask) error
	ReplaceSemesters(ctx context.Context, results []models.SemesterResult) error
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository constructs the repository implementation.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) List(ctx context.Context, filter AssessmentFilter) ([]models.AssessmentTask, error) {
	query := r.db.WithContext(ctx).Model(&models.AssessmentTask{})
	if code := strings.TrimSpace(filter.SubjectCode); code != "" {
		query = query.Where("subject_code = ?", code)
	}
	if filter.Submitted != nil {
		query = query.Where("submitted = ?", *filter.Submitted)
	}
	if filter.Graded != nil {
		if *filter.Graded {
			query = query.Where("marks IS NOT NULL")
		} else {
			query = query.Where("marks IS NULL")
		}
	}

	var tasks []models.AssessmentTask
	if err := query.Order("due_date ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *assessmentRepository) ListSemesters(ctx context.Context) ([]models.SemesterResult, error) {
	var results []models.SemesterResult
	if err := r.db.WithContext(ctx).Order("semester ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assessmentRepository) ReplaceAssessments(ctx context.Context, tasks []models.AssessmentTask) error {
	return replaceAll(ctx, r.db, &models.AssessmentTask{}, tasks)
}

func (r *assessmentRepository) ReplaceSemesters(ctx context.Context, results []models.SemesterResult) error {
	return replaceAll(ctx, r.db, &models.SemesterResult{}, results)
}
