package models

import "time"

// Assistant transcript roles.
const (
	AssistantRoleUser  = "user"
	AssistantRoleModel = "model"
)

// AssistantMessage is one line of a student's assistant transcript.
type AssistantMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	Text      string    `gorm:"type:text" json:"text"`
	Fallback  bool      `gorm:"not null;default:false" json:"fallback"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
