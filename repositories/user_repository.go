package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"warbler/auth"
	"warbler/models"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// dummyHash keeps the unknown-username path of Authenticate doing the same
// bcrypt work as the wrong-password path.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Signup creates a new user with a hashed credential. The image URL falls
// back to DefaultImageURL; a taken username or email comes back as a
// DuplicateError naming the conflicting field.
func (r *userRepository) Signup(username, email, password, imageURL string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email address is required", models.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", models.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		PwHash:         hash,
		ImageURL:       imageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

// Authenticate returns the user when the username exists and the password
// verifies. Both failure modes return (nil, nil): callers cannot tell an
// unknown username from a wrong password.
func (r *userRepository) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		auth.CheckPassword(password, dummyHash)
		return nil, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	if !auth.CheckPassword(password, user.PwHash) {
		return nil, nil
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error) {
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if update.Username != nil {
			if strings.TrimSpace(*update.Username) == "" {
				return fmt.Errorf("%w: username is required", models.ErrValidation)
			}
			user.Username = strings.TrimSpace(*update.Username)
		}
		if update.Email != nil {
			if !strings.Contains(*update.Email, "@") {
				return fmt.Errorf("%w: a valid email address is required", models.ErrValidation)
			}
			user.Email = strings.TrimSpace(*update.Email)
		}
		if update.Password != nil {
			if *update.Password == "" {
				return fmt.Errorf("%w: password is required", models.ErrValidation)
			}
			hash, err := auth.HashPassword(*update.Password)
			if err != nil {
				return err
			}
			user.PwHash = hash
		}
		if update.ImageURL != nil {
			user.ImageURL = *update.ImageURL
		}
		if update.HeaderImageURL != nil {
			user.HeaderImageURL = *update.HeaderImageURL
		}
		if update.Bio != nil {
			user.Bio = *update.Bio
		}
		if update.Location != nil {
			user.Location = *update.Location
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Delete removes the user together with their messages, both directions of
// follow edges, their likes and the likes on their messages, all in one
// transaction.
func (r *userRepository) Delete(userID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.User{}, userID).Error; err != nil {
			return err
		}
		owned := tx.Model(&models.Message{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("message_id IN (?)", owned).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_being_followed_id = ? OR user_following_id = ?", userID, userID).
			Delete(&models.Follows{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	return translate(err)
}

func (r *userRepository) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Search matches usernames by substring.
func (r *userRepository) Search(query string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("username LIKE ?", "%"+query+"%").Find(&users).Error
	return users, translate(err)
}

func (r *userRepository) All() ([]models.User, error) {
	var users []models.User
	err := r.db.Find(&users).Error
	return users, translate(err)
}
