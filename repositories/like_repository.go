package repositories

import (
	"gorm.io/gorm"

	"warbler/models"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the like edge for (userID, messageID) in one transaction:
// remove it when present, create it otherwise, and report which state
// resulted. A concurrent duplicate insert loses on the uniqueness constraint
// and surfaces as ErrAlreadyLiked rather than a second edge.
func (r *likeRepository) Toggle(userID, messageID uint) (models.LikeState, error) {
	var state models.LikeState
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND message_id = ?", userID, messageID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			state = models.Unliked
			return nil
		}

		var count int64
		if err := tx.Model(&models.Message{}).Where("id = ?", messageID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return models.ErrNotFound
		}
		state = models.Liked
		return tx.Create(&models.Like{UserID: userID, MessageID: messageID}).Error
	})
	if err != nil {
		return "", translate(err)
	}
	return state, nil
}

func (r *likeRepository) IsLikedBy(userID, messageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *likeRepository) LikedMessageIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("message_id", &ids).Error
	return ids, translate(err)
}

// LikedMessages returns the messages the user has liked, newest first.
func (r *likeRepository) LikedMessages(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("User").
		Joins("INNER JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("messages.timestamp DESC, messages.id ASC").
		Find(&messages).Error
	return messages, translate(err)
}
