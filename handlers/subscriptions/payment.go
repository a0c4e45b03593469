package subscriptions

import (
	"errors"
	"net/http"
	"time"

	"quanta-backend/db"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var supportedTokenTypes = map[string]bool{
	"XION": true,
	"USDC": true,
}

type CreatePaymentRequest struct {
	CreatorWallet    string  `json:"creatorWallet" binding:"required"`
	SubscriberWallet string  `json:"subscriberWallet" binding:"required"`
	Type             string  `json:"type" binding:"required"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	TokenType        string  `json:"tokenType" binding:"required"`
	Email            string  `json:"email"`
	FullName         string  `json:"fullname"`
	PhoneCountryCode string  `json:"phoneCountryCode"`
	PhoneNumber      string  `json:"phoneNumber"`
	AddressLine1     string  `json:"addressLine1"`
	City             string  `json:"city"`
	Country          string  `json:"country"`
}

func expiryFor(subType models.SubscriptionType, from time.Time) time.Time {
	switch subType {
	case models.SubscriptionMonthly:
		return from.AddDate(0, 1, 0)
	case models.SubscriptionYearly:
		return from.AddDate(1, 0, 0)
	default:
		// one-time purchases effectively never expire
		return from.AddDate(100, 0, 0)
	}
}

// CreatePayment starts a paid subscription: it creates a pending subscription,
// opens a payment session with NovyPay and records the pending payment attempt.
// @Summary Create a subscription payment session
// @Description Create a pending subscription and a NovyPay payment session. Returns the gateway reference and the redirect URL.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param payment body CreatePaymentRequest true "Payment information"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "status, subscriptionId, reference, redirectUrl"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 403 {object} map[string]string "error: Wallet mismatch"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 409 {object} map[string]string "error: Already subscribed"
// @Failure 500 {object} map[string]string "error: Gateway or server error"
// @Router /subscriptions/create-payment [post]
func CreatePayment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if req.CreatorWallet == req.SubscriberWallet {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot subscribe to yourself"})
		return
	}

	subType := models.SubscriptionType(req.Type)
	if subType != models.SubscriptionMonthly && subType != models.SubscriptionYearly && subType != models.SubscriptionOneTime {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription type"})
		return
	}

	if !supportedTokenTypes[req.TokenType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported token type: " + req.TokenType})
		return
	}

	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The amount must be greater than zero"})
		return
	}

	if req.Currency == "" {
		req.Currency = "USD"
	}

	// the caller can only pay with their own wallet
	if wallet, ok := c.Get("wallet"); ok {
		if walletStr, ok := wallet.(string); ok && walletStr != "" && walletStr != req.SubscriberWallet {
			c.JSON(http.StatusForbidden, gin.H{"error": "The subscriber wallet does not match the authenticated user"})
			return
		}
	}

	var subscriber models.User
	if err := db.DB.First(&subscriber, "wallet_address = ?", req.SubscriberWallet).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Subscriber not found in CreatePayment")
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}

	var creator models.User
	if err := db.DB.First(&creator, "wallet_address = ?", req.CreatorWallet).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Content creator not found in CreatePayment")
		c.JSON(http.StatusNotFound, gin.H{"error": "Content creator not found"})
		return
	}

	var existing models.Subscription
	err := db.DB.Where("content_creator_id = ? AND subscriber_id = ? AND status = ? AND amount > 0",
		creator.ID, subscriber.ID, models.SubscriptionActive).First(&existing).Error
	if err == nil {
		utils.LogErrorWithUser(userID, nil, "Active subscription already exists in CreatePayment")
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an active subscription with this creator"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogErrorWithUser(userID, err, "Error checking existing subscription in CreatePayment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking existing subscription"})
		return
	}

	expiresAt := expiryFor(subType, time.Now())
	subscription := models.Subscription{
		ContentCreatorID: creator.ID,
		SubscriberID:     subscriber.ID,
		Type:             subType,
		Status:           models.SubscriptionPending,
		Amount:           req.Amount,
		Currency:         req.Currency,
		ExpiresAt:        &expiresAt,
	}

	if err := db.DB.Create(&subscription).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating pending subscription in CreatePayment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating subscription"})
		return
	}

	gatewayResp, err := utils.CreateNovypayPayment(utils.NovypayPaymentRequest{
		Amount:           req.Amount,
		Currency:         req.Currency,
		TokenType:        req.TokenType,
		Email:            req.Email,
		FullName:         req.FullName,
		PhoneCountryCode: req.PhoneCountryCode,
		PhoneNumber:      req.PhoneNumber,
		AddressLine1:     req.AddressLine1,
		City:             req.City,
		Country:          req.Country,
	})
	if err != nil {
		// no orphaned pending rows when the gateway refuses the session
		db.DB.Delete(&subscription)
		notifyPaymentFailed(subscriber, creator, req.Amount, req.Currency)
		utils.LogErrorWithUser(userID, err, "NovyPay session creation failed in CreatePayment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway error"})
		return
	}

	payment := models.SubscriptionPayment{
		SubscriptionID:   subscription.ID,
		NovypayReference: gatewayResp.Reference,
		Amount:           req.Amount,
		Currency:         req.Currency,
		TokenType:        req.TokenType,
		Status:           models.PaymentPending,
	}
	if err := db.DB.Create(&payment).Error; err != nil {
		db.DB.Delete(&subscription)
		utils.LogErrorWithUser(userID, err, "Error creating payment record in CreatePayment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating payment record"})
		return
	}

	utils.LogSuccessWithUser(userID, "NovyPay payment session created in CreatePayment")
	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"subscriptionId": subscription.ID,
		"reference":      gatewayResp.Reference,
		"redirectUrl":    gatewayResp.RedirectURL,
	})
}
