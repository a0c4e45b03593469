package models

import (
	"time"
)

type SubscriptionType string

const (
	SubscriptionMonthly SubscriptionType = "MONTHLY"
	SubscriptionYearly  SubscriptionType = "YEARLY"
	SubscriptionOneTime SubscriptionType = "ONE_TIME"
)

type User struct {
	ID                   string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	WalletAddress        string           `json:"walletAddress" gorm:"column:wallet_address;uniqueIndex;not null"`
	UserName             string           `json:"username"`
	Email                string           `json:"email"`
	Bio                  string           `json:"bio"`
	AvatarURL            string           `json:"avatarUrl" gorm:"column:avatar_url"`
	IsAdmin              bool             `json:"isAdmin" gorm:"default:false"`
	SubscriptionPrice    float64          `json:"subscriptionPrice" gorm:"default:0"`
	SubscriptionCurrency string           `json:"subscriptionCurrency" gorm:"default:'USD'"`
	SubscriptionType     SubscriptionType `json:"subscriptionType" gorm:"type:varchar(20);default:'MONTHLY'"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

type WalletLogin struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

type UserUpdate struct {
	UserName             string  `json:"username"`
	Email                string  `json:"email"`
	Bio                  string  `json:"bio"`
	AvatarURL            string  `json:"avatarUrl"`
	SubscriptionPrice    float64 `json:"subscriptionPrice"`
	SubscriptionCurrency string  `json:"subscriptionCurrency"`
	SubscriptionType     string  `json:"subscriptionType"`
}

func (User) TableName() string {
	return "users"
}
