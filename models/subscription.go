package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "PENDING"
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
	SubscriptionExpired  SubscriptionStatus = "EXPIRED"
)

type Subscription struct {
	ID               string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ContentCreatorID string             `json:"contentCreatorId" gorm:"column:content_creator_id;type:uuid;not null"`
	SubscriberID     string             `json:"subscriberId" gorm:"column:subscriber_id;type:uuid;not null"`
	Type             SubscriptionType   `json:"type" gorm:"type:varchar(20);not null"`
	Status           SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	Amount           float64            `json:"amount"`
	Currency         string             `json:"currency" gorm:"default:'USD'"`
	ExpiresAt        *time.Time         `json:"expiresAt"`
	LastRenewedAt    *time.Time         `json:"lastRenewedAt"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsPaidActive reports whether the subscription currently grants premium access.
// Zero-amount rows are free follows and never grant access. One-time
// subscriptions never expire; the other billing cycles must not be past their
// expiry.
func (s *Subscription) IsPaidActive(now time.Time) bool {
	if s.Status != SubscriptionActive || s.Amount <= 0 {
		return false
	}
	if s.Type == SubscriptionOneTime {
		return true
	}
	return s.ExpiresAt != nil && s.ExpiresAt.After(now)
}
