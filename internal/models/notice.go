package models

import "time"

// Notice is a campus announcement. IsNew flips to false once opened.
type Notice struct {
	ID            string    `gorm:"primaryKey;size:32" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	PublishedAt   time.Time `gorm:"index;not null" json:"published_at"`
	IsNew         bool      `gorm:"not null;default:true" json:"is_new"`
	HasAttachment bool      `gorm:"not null;default:false" json:"has_attachment"`
}
