package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// AssistantRepository persists assistant transcripts.
type AssistantRepository interface {
	Save(ctx context.Context, message *models.AssistantMessage) error
	ListByStudent(ctx context.Context, studentID uint, limit int) ([]models.AssistantMessage, error)
	CountByStudent(ctx context.Context, studentID uint) (int64, error)
}

type assistantRepository struct {
	db *gorm.DB
}

// NewAssistantRepository constructs an assistant repository backed by GORM.
func NewAssistantRepository(db *gorm.DB) AssistantRepository {
	return &assistantRepository{db: db}
}

func (r *assistantRepository) Save(ctx context.Context, message *models.AssistantMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *assistantRepository) ListByStudent(ctx context.Context, studentID uint, limit int) ([]models.AssistantMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var messages []models.AssistantMessage
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Reverse to chronological order ascending for clients.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *assistantRepository) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.AssistantMessage{}).Where("student_id = ?", studentID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
