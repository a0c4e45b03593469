package audio

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

// @Summary Upload a new audio track
// @Description Create an audio track with its media file, an optional cover and an optional future release date
// @Tags audio
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Track title"
// @Param description formData string false "Description"
// @Param duration formData integer false "Duration in seconds"
// @Param isPremium formData boolean false "Premium gate"
// @Param published formData boolean false "Published"
// @Param releaseDate formData string false "RFC3339 release date"
// @Param audio formData file true "Audio file"
// @Param cover formData file false "Cover image"
// @Security BearerAuth
// @Success 201 {object} models.Audio
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /audio [post]
func CreateAudio(c *gin.Context) {
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

	track := models.Audio{
		UserID:      userID.(string),
		Title:       title,
		Description: c.Request.FormValue("description"),
		Duration:    duration,
		IsPremium:   c.Request.FormValue("isPremium") == "true",
		Published:   c.Request.FormValue("published") == "true",
		ReleaseDate: releaseDate,
	}

	file, err := c.FormFile("audio")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is required"})
		return
	}
	audioURL, err := utils.UploadAudio(file, "audio_tracks", "audio")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading audio: " + err.Error()})
		return
	}
	track.AudioURL = audioURL

	if cover, err := c.FormFile("cover"); err == nil && cover != nil {
		coverURL, err := utils.UploadImage(cover, "audio_covers", "cover")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading cover: " + err.Error()})
			return
		}
		track.CoverURL = coverURL
	}

	if err := db.DB.Create(&track).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating audio: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, track)
}

// @Summary Get all audio tracks
// @Description Retrieve published tracks whose release date has passed. Premium media URLs are withheld without an active subscription. ?mine=true lists the caller's own tracks including drafts.
// @Tags audio
// @Produce json
// @Param creator query string false "Filter by creator ID"
// @Param mine query boolean false "Only the caller's tracks"
// @Success 200 {array} models.Audio
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /audio [get]
func GetAllAudio(c *gin.Context) {
	query := db.DB.Model(&models.Audio{}).Order("created_at DESC")

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

	var tracks []models.Audio
	if err := query.Find(&tracks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving audio: " + err.Error()})
		return
	}

	subscriberID := ""
	if userID, exists := c.Get("user_id"); exists {
		subscriberID, _ = userID.(string)
	}

	accessByCreator := map[string]bool{}
	for i := range tracks {
		if !tracks[i].IsPremium {
			continue
		}
		hasAccess, seen := accessByCreator[tracks[i].UserID]
		if !seen {
			hasAccess = subscriptions.EvaluateAccess(subscriberID, true, tracks[i].UserID).HasAccess
			accessByCreator[tracks[i].UserID] = hasAccess
		}
		if !hasAccess {
			tracks[i].AudioURL = ""
		}
	}

	c.JSON(http.StatusOK, tracks)
}

// @Summary Get an audio track by ID
// @Description Retrieve a track. The premium media URL is withheld without an active subscription; the response carries the access decision.
// @Tags audio
// @Produce json
// @Param id path string true "Audio ID"
// @Success 200 {object} map[string]interface{} "audio, hasAccess, isPremium, reason"
// @Failure 404 {object} map[string]string "error: Audio not found"
// @Router /audio/{id} [get]
func GetAudioByID(c *gin.Context) {
	var track models.Audio
	if err := db.DB.First(&track, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio not found"})
		return
	}

	subscriberID := ""
	if userID, exists := c.Get("user_id"); exists {
		subscriberID, _ = userID.(string)
	}

	released := track.ReleaseDate == nil || !track.ReleaseDate.After(time.Now())
	if (!track.Published || !released) && subscriberID != track.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio not found"})
		return
	}

	access := subscriptions.EvaluateAccess(subscriberID, track.IsPremium, track.UserID)
	if !access.HasAccess {
		track.AudioURL = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"audio":     track,
		"hasAccess": access.HasAccess,
		"isPremium": access.IsPremium,
		"reason":    access.Reason,
	})
}

// @Summary Update an audio track
// @Description Update a track. Published may only go from false to true, there is no unpublish.
// @Tags audio
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Audio ID"
// @Security BearerAuth
// @Success 200 {object} models.Audio
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Audio not found"
// @Router /audio/{id} [put]
func UpdateAudio(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var track models.Audio
	if err := db.DB.First(&track, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio not found"})
		return
	}

	if track.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this track"})
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
		if published != "true" && track.Published {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A published track cannot be unpublished"})
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

	if cover, err := c.FormFile("cover"); err == nil && cover != nil {
		coverURL, err := utils.UploadImage(cover, "audio_covers", "cover")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading cover: " + err.Error()})
			return
		}
		updates["cover_url"] = coverURL
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&track).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating audio: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, track)
}

// @Summary Delete an audio track
// @Description Delete a track owned by the caller
// @Tags audio
// @Produce json
// @Param id path string true "Audio ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Audio deleted"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Audio not found"
// @Router /audio/{id} [delete]
func DeleteAudio(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var track models.Audio
	if err := db.DB.First(&track, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio not found"})
		return
	}

	if track.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this track"})
		return
	}

	if err := db.DB.Delete(&track).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting audio: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Audio deleted successfully"})
}
