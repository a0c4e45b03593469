package models

import (
	"time"

	"gorm.io/gorm"
)

type Article struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID      string         `json:"userId" gorm:"column:user_id;type:uuid;not null"`
	Title       string         `json:"title" binding:"required"`
	Content     string         `json:"content" gorm:"type:text"`
	CoverURL    string         `json:"coverUrl" gorm:"column:cover_url"`
	IsPremium   bool           `json:"isPremium" gorm:"default:false"`
	Published   bool           `json:"published" gorm:"default:false"`
	ReleaseDate *time.Time     `json:"releaseDate"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Article) TableName() string {
	return "articles"
}
