package models

import (
	"time"
)

type ContentType string

const (
	ContentArticle ContentType = "article"
	ContentVideo   ContentType = "video"
	ContentAudio   ContentType = "audio"
)

func ValidContentType(t string) bool {
	switch ContentType(t) {
	case ContentArticle, ContentVideo, ContentAudio:
		return true
	}
	return false
}

type ContentComment struct {
	ID          string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ContentID   string      `json:"contentId" gorm:"column:content_id;type:uuid;not null;index:idx_comments_content"`
	ContentType ContentType `json:"contentType" gorm:"column:content_type;type:varchar(10);not null;index:idx_comments_content"`
	UserID      string      `json:"userId" gorm:"column:user_id;type:uuid;not null"`
	ParentID    *string     `json:"parentId" gorm:"column:parent_id;type:uuid"`
	Content     string      `json:"content" binding:"required"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (ContentComment) TableName() string {
	return "content_comments"
}

// CommentThread is a top-level comment with its direct replies, for the
// content detail pages.
type CommentThread struct {
	ContentComment
	Replies []ContentComment `json:"replies"`
}
