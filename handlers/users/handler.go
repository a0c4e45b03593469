package users

import (
	"net/http"
	"quanta-backend/db"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserByID returns a public profile.
// @Summary Get a user by ID
// @Description Retrieve a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "error: Invalid user ID"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/{id} [get]
func GetUserByID(c *gin.Context) {
	userID := c.Param("id")

	if _, err := uuid.Parse(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserByWallet returns a public profile by wallet address.
// @Summary Get a user by wallet
// @Description Retrieve a user's public profile by wallet address
// @Tags users
// @Produce json
// @Param wallet path string true "Wallet address"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /wallets/{wallet} [get]
func GetUserByWallet(c *gin.Context) {
	wallet := c.Param("wallet")

	var user models.User
	if err := db.DB.First(&user, "wallet_address = ?", wallet).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe edits the caller's profile and creator pricing.
// @Summary Update the current user
// @Description Update profile fields and creator subscription pricing
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [put]
func UpdateMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Email != "" && !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	if input.SubscriptionPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The subscription price cannot be negative"})
		return
	}

	if input.SubscriptionType != "" {
		subType := models.SubscriptionType(input.SubscriptionType)
		if subType != models.SubscriptionMonthly && subType != models.SubscriptionYearly && subType != models.SubscriptionOneTime {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription type"})
			return
		}
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.UserName != "" {
		updates["user_name"] = input.UserName
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.Bio != "" {
		updates["bio"] = input.Bio
	}
	if input.AvatarURL != "" {
		updates["avatar_url"] = input.AvatarURL
	}
	if input.SubscriptionPrice > 0 {
		updates["subscription_price"] = input.SubscriptionPrice
	}
	if input.SubscriptionCurrency != "" {
		updates["subscription_currency"] = input.SubscriptionCurrency
	}
	if input.SubscriptionType != "" {
		updates["subscription_type"] = input.SubscriptionType
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error updating user in UpdateMe")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
			return
		}
	}

	utils.LogSuccessWithUser(userID, "Profile updated in UpdateMe")
	c.JSON(http.StatusOK, user)
}
