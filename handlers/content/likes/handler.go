package likes

import (
	"errors"
	"net/http"

	"quanta-backend/db"
	"quanta-backend/handlers/content"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Toggle a like on a content item
// @Description Add a like when none exists, remove it otherwise
// @Tags likes
// @Produce json
// @Param contentType path string true "article, video or audio"
// @Param contentId path string true "Content ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Like added or removed"
// @Failure 400 {object} map[string]string "error: Invalid content type"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Router /content/{contentType}/{contentId}/like [post]
func ToggleLike(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	contentType := c.Param("contentType")
	if !models.ValidContentType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type: " + contentType})
		return
	}
	contentID := c.Param("contentId")

	if _, err := content.Owner(models.ContentType(contentType), contentID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	var like models.ContentLike
	err := db.DB.Where("content_id = ? AND content_type = ? AND user_id = ?",
		contentID, contentType, userID).First(&like).Error

	if err == nil {
		if err := db.DB.Delete(&like).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error removing like in ToggleLike")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing like"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Like removed successfully"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogErrorWithUser(userID, err, "Error checking like in ToggleLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking like"})
		return
	}

	like = models.ContentLike{
		ContentID:   contentID,
		ContentType: models.ContentType(contentType),
		UserID:      userID.(string),
	}
	if err := db.DB.Create(&like).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating like in ToggleLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like added successfully"})
}

// @Summary Count likes of a content item
// @Description Return the number of likes and whether the caller liked it
// @Tags likes
// @Produce json
// @Param contentType path string true "article, video or audio"
// @Param contentId path string true "Content ID"
// @Success 200 {object} map[string]interface{} "count, liked"
// @Failure 400 {object} map[string]string "error: Invalid content type"
// @Router /content/{contentType}/{contentId}/likes [get]
func GetLikes(c *gin.Context) {
	contentType := c.Param("contentType")
	if !models.ValidContentType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type: " + contentType})
		return
	}
	contentID := c.Param("contentId")

	var count int64
	err := db.DB.Model(&models.ContentLike{}).
		Where("content_id = ? AND content_type = ?", contentID, contentType).
		Count(&count).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting likes"})
		return
	}

	liked := false
	if userID, exists := c.Get("user_id"); exists {
		var like models.ContentLike
		if err := db.DB.Where("content_id = ? AND content_type = ? AND user_id = ?",
			contentID, contentType, userID).First(&like).Error; err == nil {
			liked = true
		}
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "liked": liked})
}
