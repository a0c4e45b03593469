package auth

import (
	"errors"
	"net/http"
	"quanta-backend/db"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WalletLogin signs a user in with their wallet address. The account is
// created on first login; there are no passwords, the wallet is the identity.
// @Summary Wallet login
// @Description Log in with a wallet address. Creates the user on first login and returns a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body models.WalletLogin true "Wallet address"
// @Success 200 {object} map[string]interface{} "token, user"
// @Failure 400 {object} map[string]interface{} "error: Invalid input"
// @Failure 422 {object} map[string]interface{} "error: JWT not generated"
// @Router /auth/wallet-login [post]
func WalletLogin(c *gin.Context) {
	var input models.WalletLogin

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input: " + err.Error(),
		})
		return
	}

	if !utils.ValidateWalletAddress(input.WalletAddress) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid wallet address format",
		})
		return
	}

	var user models.User
	result := db.DB.Where("wallet_address = ?", input.WalletAddress).First(&user)

	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Database error: " + result.Error.Error(),
			})
			return
		}

		// first login creates the account
		user = models.User{
			WalletAddress:        input.WalletAddress,
			SubscriptionCurrency: "USD",
			SubscriptionType:     models.SubscriptionMonthly,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			utils.LogError(err, "Error creating user in WalletLogin")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Error creating user",
			})
			return
		}
		utils.LogSuccessWithUser(user.ID, "User created on first wallet login in WalletLogin")
	}

	token, err := utils.GenerateJWT(user, 72)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error generating the token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetMe returns the authenticated user.
// @Summary Current user
// @Description Return the user matching the JWT
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /auth/me [get]
func GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in GetMe")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}
