package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationPaymentSuccess NotificationType = "payment_success"
	NotificationPaymentFailed  NotificationType = "payment_failed"
	NotificationNewFollower    NotificationType = "new_follower"
	NotificationNewSubscriber  NotificationType = "new_subscriber"
)

type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string           `json:"userId" gorm:"column:user_id;type:uuid;not null;index"`
	Type      NotificationType `json:"type" gorm:"type:varchar(30);not null"`
	Message   string           `json:"message"`
	Payload   datatypes.JSON   `json:"payload"`
	Read      bool             `json:"read" gorm:"default:false"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
