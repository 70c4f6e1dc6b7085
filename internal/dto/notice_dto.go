package dto

import "time"

// NoticeResponse is a campus notice.
type NoticeResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html"`
	PublishedAt     time.Time `json:"published_at"`
	IsNew           bool      `json:"is_new"`
	HasAttachment   bool      `json:"has_attachment"`
}

// NoticeListResponse lists notices with the unread count.
type NoticeListResponse struct {
	Items    []NoticeResponse `json:"items"`
	NewCount int64            `json:"new_count"`
}
