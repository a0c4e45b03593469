package workers

import (
	"context"
	"fmt"
	"time"

	"quanta-backend/models"
	"quanta-backend/utils"

	"gorm.io/gorm"
)

// SubscriptionWorker runs the periodic sweeps that keep subscription and
// payment rows from sticking in transient states.
type SubscriptionWorker struct {
	db *gorm.DB
}

func NewSubscriptionWorker(db *gorm.DB) *SubscriptionWorker {
	return &SubscriptionWorker{db: db}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.cancelStalePending(ctx)
	go w.expireActiveSubscriptions(ctx)
}

// cancelStalePending cancels subscriptions that stayed PENDING for more than
// 24 hours, typically because the buyer abandoned the gateway checkout and
// check-payment was never called.
func (w *SubscriptionWorker) cancelStalePending(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.LogSuccess("Pending subscription sweep stopped")
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-24 * time.Hour)

			var stale []models.Subscription
			err := w.db.Where("status = ? AND created_at < ?", models.SubscriptionPending, cutoff).
				Find(&stale).Error
			if err != nil {
				utils.LogError(err, "Error finding stale pending subscriptions")
				continue
			}
			if len(stale) == 0 {
				continue
			}

			ids := make([]string, 0, len(stale))
			for _, sub := range stale {
				ids = append(ids, sub.ID)
			}

			err = w.db.Model(&models.Subscription{}).Where("id IN ?", ids).
				Update("status", models.SubscriptionCanceled).Error
			if err != nil {
				utils.LogError(err, "Error canceling stale pending subscriptions")
				continue
			}

			err = w.db.Model(&models.SubscriptionPayment{}).
				Where("subscription_id IN ? AND status = ?", ids, models.PaymentPending).
				Update("status", models.PaymentCanceled).Error
			if err != nil {
				utils.LogError(err, "Error canceling stale pending payments")
				continue
			}

			utils.LogSuccess(fmt.Sprintf("Canceled %d stale pending subscriptions", len(ids)))
		}
	}
}

// expireActiveSubscriptions marks paid subscriptions whose term has ended.
// Zero-amount follow rows have no expiry and are left alone.
func (w *SubscriptionWorker) expireActiveSubscriptions(ctx context.Context) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.LogSuccess("Subscription expiry sweep stopped")
			return
		case <-ticker.C:
			result := w.db.Model(&models.Subscription{}).
				Where("status = ? AND amount > 0 AND expires_at IS NOT NULL AND expires_at < ?",
					models.SubscriptionActive, time.Now()).
				Update("status", models.SubscriptionExpired)
			if result.Error != nil {
				utils.LogError(result.Error, "Error expiring subscriptions")
				continue
			}
			if result.RowsAffected > 0 {
				utils.LogSuccess(fmt.Sprintf("Marked %d subscriptions as expired", result.RowsAffected))
			}
		}
	}
}
