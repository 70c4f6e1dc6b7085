package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// NoticeRepository exposes campus notices and their read flag.
type NoticeRepository interface {
	List(ctx context.Context, newOnly bool) ([]models.Notice, error)
	GetByID(ctx context.Context, id string) (models.Notice, error)
	MarkRead(ctx context.Context, id string) (bool, error)
	CountNew(ctx context.Context) (int64, error)
	Replace(ctx context.Context, notices []models.Notice) error
}

type noticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository constructs the repository implementation.
func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) List(ctx context.Context, newOnly bool) ([]models.Notice, error) {
	query := r.db.WithContext(ctx).Model(&models.Notice{})
	if newOnly {
		query = query.Where("is_new = ?", true)
	}

	var notices []models.Notice
	if err := query.Order("published_at DESC").Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

func (r *noticeRepository) GetByID(ctx context.Context, id string) (models.Notice, error) {
	var notice models.Notice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&notice).Error; err != nil {
		return models.Notice{}, err
	}
	return notice, nil
}

// MarkRead clears the is-new flag and reports whether a row changed.
func (r *noticeRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Notice{}).
		Where("id = ? AND is_new = ?", id, true).
		Update("is_new", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *noticeRepository) CountNew(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Notice{}).Where("is_new = ?", true).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *noticeRepository) Replace(ctx context.Context, notices []models.Notice) error {
	return replaceAll(ctx, r.db, &models.Notice{}, notices)
}
