package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentSuccess  PaymentStatus = "SUCCESS"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentCanceled PaymentStatus = "CANCELED"
)

// IsTerminal reports whether no further automatic transition can happen.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentSuccess || s == PaymentFailed || s == PaymentCanceled
}

type SubscriptionPayment struct {
	ID               string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SubscriptionID   string        `json:"subscriptionId" gorm:"column:subscription_id;type:uuid;not null"`
	NovypayReference string        `json:"novypayReference" gorm:"column:novypay_reference;uniqueIndex;not null"`
	Amount           float64       `json:"amount"`
	Currency         string        `json:"currency" gorm:"default:'USD'"`
	TokenType        string        `json:"tokenType" gorm:"column:token_type"`
	Status           PaymentStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	PaymentDate      *time.Time    `json:"paymentDate"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

func (SubscriptionPayment) TableName() string {
	return "subscription_payments"
}
