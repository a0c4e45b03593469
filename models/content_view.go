package models

import (
	"time"
)

type ContentView struct {
	ID          string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ContentID   string      `json:"contentId" gorm:"column:content_id;type:uuid;not null;index:idx_views_content"`
	ContentType ContentType `json:"contentType" gorm:"column:content_type;type:varchar(10);not null;index:idx_views_content"`
	UserID      *string     `json:"userId" gorm:"column:user_id;type:uuid"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (ContentView) TableName() string {
	return "content_views"
}
