package repositories

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"warbler/models"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Post appends a message for authorID with a server-assigned timestamp. A
// nonexistent author trips the foreign key and comes back as ErrIntegrity.
func (r *messageRepository) Post(authorID uint, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", models.ErrValidation)
	}
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return nil, fmt.Errorf("%w: message text exceeds %d characters", models.ErrValidation, models.MaxMessageLength)
	}

	message := &models.Message{
		Text:      text,
		Timestamp: time.Now().UTC(),
		UserID:    authorID,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(message).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return message, nil
}

// Delete removes the message and its like edges when requesterID is the
// author; anyone else gets ErrUnauthorized and the message stays.
func (r *messageRepository) Delete(messageID, requesterID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var message models.Message
		if err := tx.First(&message, messageID).Error; err != nil {
			return err
		}
		if message.UserID != requesterID {
			return models.ErrUnauthorized
		}
		if err := tx.Where("message_id = ?", messageID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, messageID).Error
	})
	return translate(err)
}

func (r *messageRepository) ByID(id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.Preload("User").First(&message, id).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

// RecentByUser returns the user's newest messages, timestamp descending with
// id ascending as the tiebreak: two messages sharing a timestamp come back in
// insertion order.
func (r *messageRepository) RecentByUser(userID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("timestamp DESC, id ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, translate(err)
}
