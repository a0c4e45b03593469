package subscriptions

import (
	"encoding/json"

	"quanta-backend/db"
	"quanta-backend/models"
	"quanta-backend/utils"
	mailsmodels "quanta-backend/utils/mails-models"
)

func createNotification(userID string, ntype models.NotificationType, message string, payload map[string]interface{}) {
	notification := models.Notification{
		UserID:  userID,
		Type:    ntype,
		Message: message,
	}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			notification.Payload = raw
		}
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating notification")
	}
}

func creatorDisplayName(creator models.User) string {
	if creator.UserName != "" {
		return creator.UserName
	}
	return creator.WalletAddress
}

func notifyPaymentSuccess(subscriber models.User, creator models.User, amount float64, currency string) {
	createNotification(subscriber.ID, models.NotificationPaymentSuccess,
		"Your subscription to "+creatorDisplayName(creator)+" is now active",
		map[string]interface{}{
			"creatorId": creator.ID,
			"amount":    amount,
			"currency":  currency,
		})
	createNotification(creator.ID, models.NotificationNewSubscriber,
		creatorDisplayName(subscriber)+" subscribed to your content",
		map[string]interface{}{
			"subscriberId": subscriber.ID,
		})
	mailsmodels.PaymentSuccess(subscriber.Email, creatorDisplayName(creator), amount, currency)
}

func notifyPaymentFailed(subscriber models.User, creator models.User, amount float64, currency string) {
	createNotification(subscriber.ID, models.NotificationPaymentFailed,
		"Your payment for the subscription to "+creatorDisplayName(creator)+" failed",
		map[string]interface{}{
			"creatorId": creator.ID,
			"amount":    amount,
			"currency":  currency,
		})
	mailsmodels.PaymentFailed(subscriber.Email, creatorDisplayName(creator), amount, currency)
}
