package models

import (
	"time"

	"gorm.io/gorm"
)

type Video struct {
	ID           string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID       string         `json:"userId" gorm:"column:user_id;type:uuid;not null"`
	Title        string         `json:"title" binding:"required"`
	Description  string         `json:"description" gorm:"type:text"`
	VideoURL     string         `json:"videoUrl" gorm:"column:video_url"`
	ThumbnailURL string         `json:"thumbnailUrl" gorm:"column:thumbnail_url"`
	Duration     int            `json:"duration"`
	IsPremium    bool           `json:"isPremium" gorm:"default:false"`
	Published    bool           `json:"published" gorm:"default:false"`
	ReleaseDate  *time.Time     `json:"releaseDate"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Video) TableName() string {
	return "videos"
}
