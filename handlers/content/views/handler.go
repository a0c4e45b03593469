package views

import (
	"net/http"

	"quanta-backend/db"
	"quanta-backend/handlers/content"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Record a view on a content item
// @Description Append a view row. Anonymous viewers are recorded without a user id.
// @Tags views
// @Produce json
// @Param contentType path string true "article, video or audio"
// @Param contentId path string true "Content ID"
// @Success 201 {object} map[string]string "message: View recorded"
// @Failure 400 {object} map[string]string "error: Invalid content type"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Router /content/{contentType}/{contentId}/view [post]
func RecordView(c *gin.Context) {
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

	view := models.ContentView{
		ContentID:   contentID,
		ContentType: models.ContentType(contentType),
	}
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(string); ok && id != "" {
			view.UserID = &id
		}
	}

	if err := db.DB.Create(&view).Error; err != nil {
		utils.LogError(err, "Error recording view in RecordView")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording view"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "View recorded successfully"})
}

// @Summary Count views of a content item
// @Description Return the total number of recorded views
// @Tags views
// @Produce json
// @Param contentType path string true "article, video or audio"
// @Param contentId path string true "Content ID"
// @Success 200 {object} map[string]interface{} "count"
// @Failure 400 {object} map[string]string "error: Invalid content type"
// @Router /content/{contentType}/{contentId}/views [get]
func GetViews(c *gin.Context) {
	contentType := c.Param("contentType")
	if !models.ValidContentType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type: " + contentType})
		return
	}
	contentID := c.Param("contentId")

	var count int64
	err := db.DB.Model(&models.ContentView{}).
		Where("content_id = ? AND content_type = ?", contentID, contentType).
		Count(&count).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting views"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
