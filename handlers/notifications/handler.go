package notifications

import (
	"net/http"

	"quanta-backend/db"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary List the caller's notifications
// @Description Return the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Notification
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /notifications [get]
func GetNotifications(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var notifications []models.Notification
	err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error retrieving notifications in GetNotifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// @Summary Mark a notification as read
// @Description Mark one of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Notification marked as read"
// @Failure 404 {object} map[string]string "error: Notification not found"
// @Router /notifications/{id}/read [put]
func MarkNotificationRead(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	notificationID := c.Param("id")
	if _, err := uuid.Parse(notificationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	err := db.DB.Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if !notification.Read {
		if err := db.DB.Model(&notification).Update("read", true).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error updating notification in MarkNotificationRead")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating notification"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
