package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"warbler/models"
)

// translate maps raw store errors to the tagged error taxonomy. Uniqueness
// and foreign-key violations are recognized by the constraint messages of
// both sqlite and postgres, so the repositories never pre-check what the
// store already enforces.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		switch {
		case strings.Contains(msg, "users.username"), strings.Contains(msg, "idx_users_username"):
			return &models.DuplicateError{Field: "username"}
		case strings.Contains(msg, "users.email"), strings.Contains(msg, "idx_users_email"):
			return &models.DuplicateError{Field: "email"}
		case strings.Contains(msg, "follows."), strings.Contains(msg, "follows_pkey"):
			return models.ErrAlreadyFollowing
		case strings.Contains(msg, "likes."), strings.Contains(msg, "idx_like_user_message"):
			return models.ErrAlreadyLiked
		}
		return fmt.Errorf("%w: %v", models.ErrIntegrity, err)
	}

	if strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "NOT NULL constraint failed") ||
		strings.Contains(msg, "null value in column") {
		return fmt.Errorf("%w: %v", models.ErrIntegrity, err)
	}

	return err
}
