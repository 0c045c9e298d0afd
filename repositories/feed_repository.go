package repositories

import (
	"gorm.io/gorm"

	"warbler/models"
)

// FeedLimit bounds every feed to the newest messages.
const FeedLimit = 100

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

// HomeFeed composes the viewer's timeline: messages authored by the viewer or
// by anyone the viewer follows, timestamp descending with id ascending as the
// tiebreak, capped at FeedLimit. It is a side-effect-free projection
// recomputed on every call.
func (r *feedRepository) HomeFeed(userID uint) ([]models.Message, error) {
	followed := r.db.Model(&models.Follows{}).
		Select("user_being_followed_id").
		Where("user_following_id = ?", userID)

	var messages []models.Message
	err := r.db.Preload("User").
		Where("user_id = ? OR user_id IN (?)", userID, followed).
		Order("timestamp DESC, id ASC").
		Limit(FeedLimit).
		Find(&messages).Error
	return messages, translate(err)
}

// PublicFeed returns the newest messages by anyone, for the anonymous view.
func (r *feedRepository) PublicFeed(limit int) ([]models.Message, error) {
	if limit <= 0 || limit > FeedLimit {
		limit = FeedLimit
	}
	var messages []models.Message
	err := r.db.Preload("User").
		Order("timestamp DESC, id ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, translate(err)
}
