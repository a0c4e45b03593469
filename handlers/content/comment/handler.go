package comment

import (
	"errors"
	"net/http"

	"quanta-backend/db"
	"quanta-backend/handlers/content"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentCreate struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parentId"`
}

// @Summary Comment on a content item
// @Description Add a comment, optionally as a reply to a top-level comment on the same item
// @Tags comments
// @Accept json
// @Produce json
// @Param contentType path string true "article, video or audio"
// @Param contentId path string true "Content ID"
// @Param comment body CommentCreate true "Comment"
// @Security BearerAuth
// @Success 201 {object} models.ContentComment
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Router /content/{contentType}/{contentId}/comments [post]
func CreateComment(c *gin.Context) {
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

	var input CommentCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.ParentID != nil {
		var parent models.ContentComment
		err := db.DB.First(&parent, "id = ?", *input.ParentID).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
			return
		}
		if parent.ContentID != contentID || string(parent.ContentType) != contentType {
			c.JSON(http.StatusBadRequest, gin.H{"error": "The parent comment belongs to another content item"})
			return
		}
		// one level of threading, a reply cannot have replies
		if parent.ParentID != nil {
			input.ParentID = parent.ParentID
		}
	}

	comment := models.ContentComment{
		ContentID:   contentID,
		ContentType: models.ContentType(contentType),
		UserID:      userID.(string),
		ParentID:    input.ParentID,
		Content:     input.Content,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating comment in CreateComment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// @Summary List comments of a content item
// @Description Return the comments threaded: top-level comments with their replies, newest thread first
// @Tags comments
// @Produce json
// @Param contentType path string true "article, video or audio"
// @Param contentId path string true "Content ID"
// @Success 200 {array} models.CommentThread
// @Failure 400 {object} map[string]string "error: Invalid content type"
// @Router /content/{contentType}/{contentId}/comments [get]
func GetComments(c *gin.Context) {
	contentType := c.Param("contentType")
	if !models.ValidContentType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type: " + contentType})
		return
	}
	contentID := c.Param("contentId")

	var comments []models.ContentComment
	err := db.DB.
		Where("content_id = ? AND content_type = ?", contentID, contentType).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving comments"})
		return
	}

	repliesByParent := map[string][]models.ContentComment{}
	for _, comment := range comments {
		if comment.ParentID != nil {
			repliesByParent[*comment.ParentID] = append(repliesByParent[*comment.ParentID], comment)
		}
	}

	threads := []models.CommentThread{}
	for _, comment := range comments {
		if comment.ParentID != nil {
			continue
		}
		replies := repliesByParent[comment.ID]
		if replies == nil {
			replies = []models.ContentComment{}
		}
		threads = append(threads, models.CommentThread{
			ContentComment: comment,
			Replies:        replies,
		})
	}

	c.JSON(http.StatusOK, threads)
}

// @Summary Delete a comment
// @Description Delete a comment. Allowed for the comment author and for the owner of the content item.
// @Tags comments
// @Produce json
// @Param commentId path string true "Comment ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Comment deleted"
// @Failure 403 {object} map[string]string "error: Not allowed"
// @Failure 404 {object} map[string]string "error: Comment not found"
// @Router /content/comments/{commentId} [delete]
func DeleteComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	commentID := c.Param("commentId")
	if _, err := uuid.Parse(commentID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.ContentComment
	if err := db.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.UserID != userID {
		ownerID, err := content.Owner(comment.ContentType, comment.ContentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking content owner"})
			return
		}
		if ownerID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to delete this comment"})
			return
		}
	}

	// replies go with their parent
	if err := db.DB.Where("id = ? OR parent_id = ?", comment.ID, comment.ID).
		Delete(&models.ContentComment{}).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting comment in DeleteComment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
