package models

import (
	"time"
)

type ContentLike struct {
	ID          string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ContentID   string      `json:"contentId" gorm:"column:content_id;type:uuid;not null;uniqueIndex:idx_likes_unique"`
	ContentType ContentType `json:"contentType" gorm:"column:content_type;type:varchar(10);not null;uniqueIndex:idx_likes_unique"`
	UserID      string      `json:"userId" gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_likes_unique"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (ContentLike) TableName() string {
	return "content_likes"
}
