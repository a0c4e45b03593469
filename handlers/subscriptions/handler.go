package subscriptions

import (
	"errors"
	"net/http"

	"quanta-backend/db"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatorRequest struct {
	CreatorID     string `json:"creatorId"`
	CreatorWallet string `json:"creatorWallet"`
}

type CheckAccessRequest struct {
	ContentID   string `json:"contentId" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

func resolveCreator(req CreatorRequest) (models.User, error) {
	var creator models.User
	if req.CreatorID != "" {
		return creator, db.DB.First(&creator, "id = ?", req.CreatorID).Error
	}
	if req.CreatorWallet != "" {
		return creator, db.DB.First(&creator, "wallet_address = ?", req.CreatorWallet).Error
	}
	return creator, gorm.ErrRecordNotFound
}

// GetStatus reports the follow/paid relationship between the caller and a creator.
// @Summary Subscription status towards a creator
// @Description Report whether the caller follows and/or has an active paid subscription to the creator
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param creator body CreatorRequest true "Creator id or wallet"
// @Security BearerAuth
// @Success 200 {object} StatusResult
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Creator not found"
// @Router /subscriptions/status [post]
func GetStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	creator, err := resolveCreator(req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}

	status, err := ResolveStatus(userID.(string), creator.ID)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error resolving status in GetStatus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving subscription status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// CheckAccess evaluates whether the caller may view a content item.
// @Summary Check access to a content item
// @Description Evaluate access for the caller (anonymous allowed) against a content item's premium gate
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param content body CheckAccessRequest true "Content id and type"
// @Success 200 {object} AccessResult
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Router /subscriptions/check-access [post]
func CheckAccess(c *gin.Context) {
	var req CheckAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !models.ValidContentType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type: " + req.ContentType})
		return
	}

	subscriberID := ""
	if userID, exists := c.Get("user_id"); exists {
		subscriberID, _ = userID.(string)
	}

	result := EvaluateContentAccess(subscriberID, req.ContentID, models.ContentType(req.ContentType))
	c.JSON(http.StatusOK, result)
}

// Follow creates a free follow relationship with a creator.
// @Summary Follow a creator
// @Description Create a zero-amount subscription row so the creator shows up in the caller's feed. No payment involved.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param creator body CreatorRequest true "Creator id or wallet"
// @Security BearerAuth
// @Success 201 {object} models.Subscription
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Creator not found"
// @Failure 409 {object} map[string]string "error: Already following"
// @Router /subscriptions/follow [post]
func Follow(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	creator, err := resolveCreator(req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}

	if creator.ID == userID.(string) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow yourself"})
		return
	}

	// only zero-amount rows count as follows; a lapsed or canceled paid
	// subscription must not block following the creator again
	var existing models.Subscription
	err = db.DB.Where("content_creator_id = ? AND subscriber_id = ? AND amount = 0", creator.ID, userID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already follow this creator"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogErrorWithUser(userID, err, "Error checking existing follow in Follow")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking existing follow"})
		return
	}

	follow := models.Subscription{
		ContentCreatorID: creator.ID,
		SubscriberID:     userID.(string),
		Type:             models.SubscriptionOneTime,
		Status:           models.SubscriptionActive,
		Amount:           0,
		Currency:         "USD",
	}
	if err := db.DB.Create(&follow).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating follow in Follow")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating follow"})
		return
	}

	var subscriber models.User
	if err := db.DB.First(&subscriber, "id = ?", userID).Error; err == nil {
		createNotification(creator.ID, models.NotificationNewFollower,
			creatorDisplayName(subscriber)+" started following you",
			map[string]interface{}{"subscriberId": subscriber.ID})
	}

	utils.LogSuccessWithUser(userID, "Follow created in Follow")
	c.JSON(http.StatusCreated, follow)
}

// Unfollow removes a free follow relationship.
// @Summary Unfollow a creator
// @Description Delete the zero-amount follow row. Paid subscriptions are cancelled through DELETE /subscriptions/:id, not unfollowed.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param creator body CreatorRequest true "Creator id or wallet"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Unfollowed"
// @Failure 404 {object} map[string]string "error: Not following"
// @Router /subscriptions/unfollow [post]
func Unfollow(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	creator, err := resolveCreator(req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}

	result := db.DB.Where("content_creator_id = ? AND subscriber_id = ? AND amount = 0",
		creator.ID, userID).Delete(&models.Subscription{})
	if result.Error != nil {
		utils.LogErrorWithUser(userID, result.Error, "Error deleting follow in Unfollow")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing follow"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "You do not follow this creator"})
		return
	}

	utils.LogSuccessWithUser(userID, "Follow removed in Unfollow")
	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}

// GetUserSubscriptions lists the caller's subscriptions, newest first.
// @Summary List the user's subscriptions
// @Description Return all the subscriptions (pending, active, cancelled, history) of the connected user
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Subscription
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /subscriptions [get]
func GetUserSubscriptions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var subscriptions []models.Subscription
	err := db.DB.Where("subscriber_id = ?", userID).Order("created_at DESC").Find(&subscriptions).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching subscriptions in GetUserSubscriptions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subscriptions)
}

// CancelSubscription cancels a subscription owned by the caller.
// @Summary Cancel a subscription
// @Description Set the subscription status to CANCELED. Premium access ends immediately.
// @Tags subscriptions
// @Produce json
// @Param subscriptionId path string true "ID of the subscription to cancel"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Subscription canceled successfully"
// @Failure 400 {object} map[string]string "error: Invalid subscription ID"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Subscription not found"
// @Router /subscriptions/{subscriptionId} [delete]
func CancelSubscription(c *gin.Context) {
	subscriptionId := c.Param("subscriptionId")

	if _, err := uuid.Parse(subscriptionId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var subscription models.Subscription
	if err := db.DB.First(&subscription, "id = ?", subscriptionId).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Subscription not found in CancelSubscription")
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	if subscription.SubscriberID != userID {
		utils.LogErrorWithUser(userID, nil, "Not authorized to cancel this subscription in CancelSubscription")
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to cancel this subscription"})
		return
	}

	if err := db.DB.Model(&subscription).Update("status", models.SubscriptionCanceled).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating status in CancelSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error when updating the subscription status"})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription canceled in CancelSubscription")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled successfully"})
}

// GetTotalRevenue sums all confirmed payments (admin dashboard).
// @Summary Total platform revenue
// @Description Sum and count of all successful subscription payments
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "totalRevenue, paymentCount"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Router /subscriptions/revenue [get]
func GetTotalRevenue(c *gin.Context) {
	var result struct {
		TotalRevenue float64
		PaymentCount int64
	}
	err := db.DB.Model(&models.SubscriptionPayment{}).
		Select("COALESCE(SUM(amount), 0) AS total_revenue, COUNT(*) AS payment_count").
		Where("status = ?", models.PaymentSuccess).
		Scan(&result).Error
	if err != nil {
		utils.LogError(err, "Error computing revenue in GetTotalRevenue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing revenue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalRevenue": result.TotalRevenue,
		"paymentCount": result.PaymentCount,
	})
}

// GetTopContentCreators ranks creators by confirmed revenue (admin dashboard).
// @Summary Top creators by revenue
// @Description The ten creators with the highest confirmed payment volume
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} map[string]interface{}
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Router /subscriptions/top-creators [get]
func GetTopContentCreators(c *gin.Context) {
	var rows []struct {
		CreatorID string  `json:"creatorId"`
		UserName  string  `json:"username"`
		Revenue   float64 `json:"revenue"`
	}
	err := db.DB.Table("subscription_payments").
		Select("subscriptions.content_creator_id AS creator_id, users.user_name AS user_name, SUM(subscription_payments.amount) AS revenue").
		Joins("JOIN subscriptions ON subscriptions.id = subscription_payments.subscription_id").
		Joins("JOIN users ON users.id = subscriptions.content_creator_id").
		Where("subscription_payments.status = ?", models.PaymentSuccess).
		Group("subscriptions.content_creator_id, users.user_name").
		Order("revenue DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		utils.LogError(err, "Error ranking creators in GetTopContentCreators")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error ranking creators"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
