// Package content holds the plumbing shared by the comment, like and view
// handlers, which all address a content item by (type, id).
package content

import (
	"quanta-backend/db"
	"quanta-backend/models"
)

// Owner returns the owning user id of a content item, or an error when the
// item does not exist.
func Owner(contentType models.ContentType, contentID string) (string, error) {
	switch contentType {
	case models.ContentArticle:
		var article models.Article
		if err := db.DB.Select("user_id").First(&article, "id = ?", contentID).Error; err != nil {
			return "", err
		}
		return article.UserID, nil
	case models.ContentVideo:
		var video models.Video
		if err := db.DB.Select("user_id").First(&video, "id = ?", contentID).Error; err != nil {
			return "", err
		}
		return video.UserID, nil
	default:
		var audio models.Audio
		if err := db.DB.Select("user_id").First(&audio, "id = ?", contentID).Error; err != nil {
			return "", err
		}
		return audio.UserID, nil
	}
}
