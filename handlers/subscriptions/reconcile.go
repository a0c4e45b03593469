package subscriptions

import (
	"net/http"
	"time"

	"quanta-backend/db"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CheckPaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
}

func mapGatewayStatus(gatewayStatus string) models.PaymentStatus {
	switch gatewayStatus {
	case "success":
		return models.PaymentSuccess
	case "failed":
		return models.PaymentFailed
	case "cancelled", "canceled":
		return models.PaymentCanceled
	case "pending", "processing", "":
		return models.PaymentPending
	default:
		// a vocabulary change on the gateway side must show up in the logs,
		// not as an eternally pending payment
		utils.LogError(nil, "Unknown NovyPay payment status treated as pending: "+gatewayStatus)
		return models.PaymentPending
	}
}

// CheckPayment reconciles a payment attempt against NovyPay, push-style.
// @Summary Reconcile a payment by gateway reference
// @Description Query NovyPay for the final status of a payment and apply it to the payment and subscription rows. Safe to call repeatedly.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param payment body CheckPaymentRequest true "Gateway reference"
// @Success 200 {object} map[string]interface{} "status, payment, subscription"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Payment not found"
// @Failure 500 {object} map[string]string "error: Gateway or server error"
// @Router /subscriptions/check-payment [post]
func CheckPayment(c *gin.Context) {
	var req CheckPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	reconcilePayment(c, req.Reference)
}

// CheckPaymentStatus is the pollable variant of CheckPayment.
// @Summary Poll a payment status by gateway reference
// @Description Same reconciliation as the POST variant, exposed for client polling.
// @Tags subscriptions
// @Produce json
// @Param reference query string true "Gateway reference"
// @Success 200 {object} map[string]interface{} "status, payment, subscription"
// @Failure 400 {object} map[string]string "error: Missing reference"
// @Failure 404 {object} map[string]string "error: Payment not found"
// @Failure 500 {object} map[string]string "error: Gateway or server error"
// @Router /subscriptions/check-payment [get]
func CheckPaymentStatus(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The reference query parameter is required"})
		return
	}
	reconcilePayment(c, reference)
}

// reconcilePayment looks up the payment by gateway reference, asks NovyPay for
// the authoritative status and applies it. The payment row and the subscription
// row move in one transaction. Idempotent: a payment already in a terminal
// state is returned as-is, without another gateway call or duplicate
// notifications.
func reconcilePayment(c *gin.Context, reference string) {
	var payment models.SubscriptionPayment
	if err := db.DB.First(&payment, "novypay_reference = ?", reference).Error; err != nil {
		utils.LogError(err, "Payment not found in reconcilePayment")
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	var subscription models.Subscription
	if err := db.DB.First(&subscription, "id = ?", payment.SubscriptionID).Error; err != nil {
		utils.LogError(err, "Subscription not found in reconcilePayment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Subscription not found for this payment"})
		return
	}

	if payment.Status.IsTerminal() {
		c.JSON(http.StatusOK, gin.H{
			"status":       payment.Status,
			"payment":      payment,
			"subscription": subscription,
		})
		return
	}

	gatewayResp, err := utils.VerifyNovypayPayment(reference)
	if err != nil {
		// no state change on gateway failure, the caller retries
		utils.LogError(err, "NovyPay verification failed in reconcilePayment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway error"})
		return
	}

	newStatus := mapGatewayStatus(gatewayResp.PaymentStatus)
	if newStatus == models.PaymentPending {
		c.JSON(http.StatusOK, gin.H{
			"status":       payment.Status,
			"payment":      payment,
			"subscription": subscription,
		})
		return
	}

	now := time.Now()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		paymentUpdates := map[string]interface{}{
			"status": newStatus,
		}
		if newStatus == models.PaymentSuccess {
			paymentUpdates["payment_date"] = now
		}
		if err := tx.Model(&payment).Updates(paymentUpdates).Error; err != nil {
			return err
		}

		if newStatus == models.PaymentSuccess {
			if err := tx.Model(&subscription).Updates(map[string]interface{}{
				"status":          models.SubscriptionActive,
				"last_renewed_at": now,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.LogError(err, "Error applying payment status in reconcilePayment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating payment status"})
		return
	}

	var subscriber, creator models.User
	db.DB.First(&subscriber, "id = ?", subscription.SubscriberID)
	db.DB.First(&creator, "id = ?", subscription.ContentCreatorID)

	// notifications fire on the pending -> terminal edge only
	if newStatus == models.PaymentSuccess {
		notifyPaymentSuccess(subscriber, creator, payment.Amount, payment.Currency)
		utils.LogSuccessWithUser(subscription.SubscriberID, "Subscription activated in reconcilePayment")
	} else {
		notifyPaymentFailed(subscriber, creator, payment.Amount, payment.Currency)
		utils.LogErrorWithUser(subscription.SubscriberID, nil, "Payment reported "+string(newStatus)+" in reconcilePayment")
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       newStatus,
		"payment":      payment,
		"subscription": subscription,
	})
}
