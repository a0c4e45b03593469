package subscriptions

import (
	"time"

	"quanta-backend/db"
	"quanta-backend/models"
	"quanta-backend/utils"
)

// AccessResult is the outcome of an access evaluation for one content item.
type AccessResult struct {
	HasAccess bool   `json:"hasAccess"`
	IsPremium bool   `json:"isPremium"`
	Reason    string `json:"reason,omitempty"`
}

// StatusResult reports the relationship between a subscriber and a creator.
// IsFollowing is a UI signal only (any row, any status); IsPaidSubscriber is
// what access decisions rely on.
type StatusResult struct {
	IsFollowing      bool                 `json:"isFollowing"`
	IsPaidSubscriber bool                 `json:"isPaidSubscriber"`
	Subscription     *models.Subscription `json:"subscription,omitempty"`
}

// ResolveStatus looks up the subscription rows for the pair. Zero rows is not
// an error, both flags are simply false.
func ResolveStatus(subscriberID string, creatorID string) (StatusResult, error) {
	var subs []models.Subscription
	err := db.DB.
		Where("subscriber_id = ? AND content_creator_id = ?", subscriberID, creatorID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return StatusResult{}, err
	}

	result := StatusResult{IsFollowing: len(subs) > 0}

	now := time.Now()
	for i := range subs {
		if subs[i].IsPaidActive(now) {
			result.IsPaidSubscriber = true
			result.Subscription = &subs[i]
			break
		}
	}

	return result, nil
}

// EvaluateAccess decides whether subscriberID may view a content item of
// creatorID. subscriberID is empty for anonymous callers. Read-only: lookup
// failures degrade to a denial with a generic reason, they never surface as an
// error to the caller.
func EvaluateAccess(subscriberID string, isPremium bool, creatorID string) AccessResult {
	if !isPremium {
		return AccessResult{HasAccess: true}
	}

	if subscriberID == "" {
		return AccessResult{
			IsPremium: true,
			Reason:    "Authentication required for premium content",
		}
	}

	// the owner always sees their own content
	if subscriberID == creatorID {
		return AccessResult{HasAccess: true, IsPremium: true}
	}

	status, err := ResolveStatus(subscriberID, creatorID)
	if err != nil {
		utils.LogErrorWithUser(subscriberID, err, "Error resolving subscription status in EvaluateAccess")
		return AccessResult{
			IsPremium: true,
			Reason:    "Unable to verify subscription status",
		}
	}

	if status.IsPaidSubscriber {
		return AccessResult{HasAccess: true, IsPremium: true}
	}

	return AccessResult{
		IsPremium: true,
		Reason:    "An active subscription to this creator is required",
	}
}

// EvaluateContentAccess resolves the content row by id and kind, then runs the
// access evaluation against its owner and premium flag.
func EvaluateContentAccess(subscriberID string, contentID string, contentType models.ContentType) AccessResult {
	creatorID, isPremium, err := lookupContent(contentID, contentType)
	if err != nil {
		utils.LogError(err, "Error resolving content in EvaluateContentAccess")
		return AccessResult{Reason: "Content not found"}
	}
	return EvaluateAccess(subscriberID, isPremium, creatorID)
}

func lookupContent(contentID string, contentType models.ContentType) (creatorID string, isPremium bool, err error) {
	switch contentType {
	case models.ContentArticle:
		var article models.Article
		if err = db.DB.Select("user_id", "is_premium").First(&article, "id = ?", contentID).Error; err != nil {
			return "", false, err
		}
		return article.UserID, article.IsPremium, nil
	case models.ContentVideo:
		var video models.Video
		if err = db.DB.Select("user_id", "is_premium").First(&video, "id = ?", contentID).Error; err != nil {
			return "", false, err
		}
		return video.UserID, video.IsPremium, nil
	default:
		var audio models.Audio
		if err = db.DB.Select("user_id", "is_premium").First(&audio, "id = ?", contentID).Error; err != nil {
			return "", false, err
		}
		return audio.UserID, audio.IsPremium, nil
	}
}
