package articles

import (
	"net/http"
	"time"

	"quanta-backend/db"
	"quanta-backend/handlers/subscriptions"
	"quanta-backend/models"
	"quanta-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// parseReleaseDate accepts RFC3339; an empty value means publish immediately.
func parseReleaseDate(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// @Summary Create a new article
// @Description Create an article with an optional cover image and an optional future release date
// @Tags articles
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Article title"
// @Param content formData string false "Article body"
// @Param isPremium formData boolean false "Premium gate"
// @Param published formData boolean false "Published"
// @Param releaseDate formData string false "RFC3339 release date"
// @Param cover formData file false "Cover image"
// @Security BearerAuth
// @Success 201 {object} models.Article
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /articles [post]
func CreateArticle(c *gin.Context) {
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

	releaseDate, ok := parseReleaseDate(c.Request.FormValue("releaseDate"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid release date, expected RFC3339"})
		return
	}

	article := models.Article{
		UserID:      userID.(string),
		Title:       title,
		Content:     c.Request.FormValue("content"),
		IsPremium:   c.Request.FormValue("isPremium") == "true",
		Published:   c.Request.FormValue("published") == "true",
		ReleaseDate: releaseDate,
	}

	if file, err := c.FormFile("cover"); err == nil && file != nil {
		coverURL, err := utils.UploadImage(file, "article_covers", "article")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading cover: " + err.Error()})
			return
		}
		article.CoverURL = coverURL
	}

	if err := db.DB.Create(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating article: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, article)
}

// listVisible restricts a content query to what the public may see: published
// items whose release date has passed (or was never set).
func listVisible(c *gin.Context, query *gorm.DB) *gorm.DB {
	if c.Query("mine") == "true" {
		if userID, exists := c.Get("user_id"); exists {
			return query.Where("user_id = ?", userID)
		}
	}
	query = query.Where("published = ?", true).
		Where("release_date IS NULL OR release_date <= ?", time.Now())
	if creatorID := c.Query("creator"); creatorID != "" {
		query = query.Where("user_id = ?", creatorID)
	}
	return query
}

// @Summary Get all articles
// @Description Retrieve published articles whose release date has passed. Premium bodies are withheld without an active subscription. ?mine=true lists the caller's own articles including drafts.
// @Tags articles
// @Produce json
// @Param creator query string false "Filter by creator ID"
// @Param mine query boolean false "Only the caller's articles"
// @Success 200 {array} models.Article
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /articles [get]
func GetAllArticles(c *gin.Context) {
	var articles []models.Article
	query := listVisible(c, db.DB.Order("created_at DESC").Model(&models.Article{}))

	if err := query.Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving articles: " + err.Error()})
		return
	}

	subscriberID := ""
	if userID, exists := c.Get("user_id"); exists {
		subscriberID, _ = userID.(string)
	}

	// one access evaluation per distinct creator, not per item
	accessByCreator := map[string]bool{}
	for i := range articles {
		if !articles[i].IsPremium {
			continue
		}
		hasAccess, seen := accessByCreator[articles[i].UserID]
		if !seen {
			hasAccess = subscriptions.EvaluateAccess(subscriberID, true, articles[i].UserID).HasAccess
			accessByCreator[articles[i].UserID] = hasAccess
		}
		if !hasAccess {
			articles[i].Content = ""
		}
	}

	c.JSON(http.StatusOK, articles)
}

// @Summary Get an article by ID
// @Description Retrieve an article. The premium body is withheld without an active subscription; the response carries the access decision.
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} map[string]interface{} "article, hasAccess, isPremium, reason"
// @Failure 404 {object} map[string]string "error: Article not found"
// @Router /articles/{id} [get]
func GetArticleByID(c *gin.Context) {
	var article models.Article
	if err := db.DB.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	subscriberID := ""
	if userID, exists := c.Get("user_id"); exists {
		subscriberID, _ = userID.(string)
	}

	// drafts and scheduled items are visible to their owner only
	released := article.ReleaseDate == nil || !article.ReleaseDate.After(time.Now())
	if (!article.Published || !released) && subscriberID != article.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	access := subscriptions.EvaluateAccess(subscriberID, article.IsPremium, article.UserID)
	if !access.HasAccess {
		article.Content = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"article":   article,
		"hasAccess": access.HasAccess,
		"isPremium": access.IsPremium,
		"reason":    access.Reason,
	})
}

// @Summary Update an article
// @Description Update an article. Published may only go from false to true, there is no unpublish.
// @Tags articles
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Article ID"
// @Security BearerAuth
// @Success 200 {object} models.Article
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Article not found"
// @Router /articles/{id} [put]
func UpdateArticle(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var article models.Article
	if err := db.DB.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	if article.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this article"})
		return
	}

	updates := map[string]interface{}{}
	if title := c.Request.FormValue("title"); title != "" {
		updates["title"] = title
	}
	if content := c.Request.FormValue("content"); content != "" {
		updates["content"] = content
	}
	if isPremium := c.Request.FormValue("isPremium"); isPremium != "" {
		updates["is_premium"] = isPremium == "true"
	}
	if published := c.Request.FormValue("published"); published != "" {
		if published != "true" && article.Published {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A published article cannot be unpublished"})
			return
		}
		updates["published"] = published == "true"
	}
	if releaseRaw := c.Request.FormValue("releaseDate"); releaseRaw != "" {
		releaseDate, ok := parseReleaseDate(releaseRaw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid release date, expected RFC3339"})
			return
		}
		updates["release_date"] = releaseDate
	}

	if file, err := c.FormFile("cover"); err == nil && file != nil {
		coverURL, err := utils.UploadImage(file, "article_covers", "article")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading cover: " + err.Error()})
			return
		}
		updates["cover_url"] = coverURL
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&article).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating article: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, article)
}

// @Summary Delete an article
// @Description Delete an article owned by the caller
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Article deleted"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Article not found"
// @Router /articles/{id} [delete]
func DeleteArticle(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var article models.Article
	if err := db.DB.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	if article.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this article"})
		return
	}

	if err := db.DB.Delete(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting article: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}
