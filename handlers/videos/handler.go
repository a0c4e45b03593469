package videos

import (
	"net/http"
	"strconv"
	"time"

	"quanta-backend/db"
	"quanta-backend/handlers/subscriptions"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Upload a new video
// @Description Create a video with its media file, an optional thumbnail and an optional future release date
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Video title"
// @Param description formData string false "Description"
// @Param duration formData integer false "Duration in seconds"
// @Param isPremium formData boolean false "Premium gate"
// @Param published formData boolean false "Published"
// @Param releaseDate formData string false "RFC3339 release date"
// @Param video formData file true "Video file"
// @Param thumbnail formData file false "Thumbnail image"
// @Security BearerAuth
// @Success 201 {object} models.Video
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /videos [post]
func CreateVideo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	title := c.Request.FormValue("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	var releaseDate *time.Time
	if raw := c.Request.FormValue("releaseDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid release date, expected RFC3339"})
			return
		}
		releaseDate = &t
	}

	duration, _ := strconv.Atoi(c.Request.FormValue("duration"))

	video := models.Video{
		UserID:      userID.(string),
		Title:       title,
		Description: c.Request.FormValue("description"),
		Duration:    duration,
		IsPremium:   c.Request.FormValue("isPremium") == "true",
		Published:   c.Request.FormValue("published") == "true",
		ReleaseDate: releaseDate,
	}

	file, err := c.FormFile("video")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video file is required"})
		return
	}
	videoURL, err := utils.UploadVideo(file, "videos", "video")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading video: " + err.Error()})
		return
	}
	video.VideoURL = videoURL

	if thumb, err := c.FormFile("thumbnail"); err == nil && thumb != nil {
		thumbnailURL, err := utils.UploadImage(thumb, "video_thumbnails", "thumbnail")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading thumbnail: " + err.Error()})
			return
		}
		video.ThumbnailURL = thumbnailURL
	}

	if err := db.DB.Create(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating video: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, video)
}

// @Summary Get all videos
// @Description Retrieve published videos whose release date has passed. Premium media URLs are withheld without an active subscription. ?mine=true lists the caller's own videos including drafts.
// @Tags videos
// @Produce json
// @Param creator query string false "Filter by creator ID"
// @Param mine query boolean false "Only the caller's videos"
// @Success 200 {array} models.Video
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /videos [get]
func GetAllVideos(c *gin.Context) {
	query := db.DB.Model(&models.Video{}).Order("created_at DESC")

	if c.Query("mine") == "true" {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		query = query.Where("user_id = ?", userID)
	} else {
		query = query.Where("published = ?", true).
			Where("release_date IS NULL OR release_date <= ?", time.Now())
		if creatorID := c.Query("creator"); creatorID != "" {
			query = query.Where("user_id = ?", creatorID)
		}
	}

	var videos []models.Video
	if err := query.Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving videos: " + err.Error()})
		return
	}

	subscriberID := ""
	if userID, exists := c.Get("user_id"); exists {
		subscriberID, _ = userID.(string)
	}

	accessByCreator := map[string]bool{}
	for i := range videos {
		if !videos[i].IsPremium {
			continue
		}
		hasAccess, seen := accessByCreator[videos[i].UserID]
		if !seen {
			hasAccess = subscriptions.EvaluateAccess(subscriberID, true, videos[i].UserID).HasAccess
			accessByCreator[videos[i].UserID] = hasAccess
		}
		if !hasAccess {
			videos[i].VideoURL = ""
		}
	}

	c.JSON(http.StatusOK, videos)
}

// @Summary Get a video by ID
// @Description Retrieve a video. The premium media URL is withheld without an active subscription; the response carries the access decision.
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]interface{} "video, hasAccess, isPremium, reason"
// @Failure 404 {object} map[string]string "error: Video not found"
// @Router /videos/{id} [get]
func GetVideoByID(c *gin.Context) {
	var video models.Video
	if err := db.DB.First(&video, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	subscriberID := ""
	if userID, exists := c.Get("user_id"); exists {
		subscriberID, _ = userID.(string)
	}

	released := video.ReleaseDate == nil || !video.ReleaseDate.After(time.Now())
	if (!video.Published || !released) && subscriberID != video.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	access := subscriptions.EvaluateAccess(subscriberID, video.IsPremium, video.UserID)
	if !access.HasAccess {
		video.VideoURL = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"video":     video,
		"hasAccess": access.HasAccess,
		"isPremium": access.IsPremium,
		"reason":    access.Reason,
	})
}

// @Summary Update a video
// @Description Update a video. Published may only go from false to true, there is no unpublish.
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Video ID"
// @Security BearerAuth
// @Success 200 {object} models.Video
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Video not found"
// @Router /videos/{id} [put]
func UpdateVideo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var video models.Video
	if err := db.DB.First(&video, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	if video.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this video"})
		return
	}

	updates := map[string]interface{}{}
	if title := c.Request.FormValue("title"); title != "" {
		updates["title"] = title
	}
	if description := c.Request.FormValue("description"); description != "" {
		updates["description"] = description
	}
	if duration := c.Request.FormValue("duration"); duration != "" {
		if d, err := strconv.Atoi(duration); err == nil {
			updates["duration"] = d
		}
	}
	if isPremium := c.Request.FormValue("isPremium"); isPremium != "" {
		updates["is_premium"] = isPremium == "true"
	}
	if published := c.Request.FormValue("published"); published != "" {
		if published != "true" && video.Published {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A published video cannot be unpublished"})
			return
		}
		updates["published"] = published == "true"
	}
	if raw := c.Request.FormValue("releaseDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid release date, expected RFC3339"})
			return
		}
		updates["release_date"] = &t
	}

	if thumb, err := c.FormFile("thumbnail"); err == nil && thumb != nil {
		thumbnailURL, err := utils.UploadImage(thumb, "video_thumbnails", "thumbnail")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading thumbnail: " + err.Error()})
			return
		}
		updates["thumbnail_url"] = thumbnailURL
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&video).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating video: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, video)
}

// @Summary Delete a video
// @Description Delete a video owned by the caller
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Video deleted"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Video not found"
// @Router /videos/{id} [delete]
func DeleteVideo(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var video models.Video
	if err := db.DB.First(&video, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	if video.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this video"})
		return
	}

	if err := db.DB.Delete(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting video: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}
