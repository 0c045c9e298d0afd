package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"warbler/models"
)

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow creates the edge followerID -> followedID. A duplicate follow is
// surfaced as ErrAlreadyFollowing straight from the uniqueness constraint;
// there is no pre-check, so the answer stays correct when two requests race.
func (r *followRepository) Follow(followerID, followedID uint) error {
	if followerID == followedID {
		return models.ErrSelfFollow
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// The follows table carries no foreign keys, so a missing endpoint
		// must be rejected here rather than left as a dangling edge.
		var count int64
		if err := tx.Model(&models.User{}).
			Where("id IN ?", []uint{followerID, followedID}).
			Count(&count).Error; err != nil {
			return err
		}
		if count != 2 {
			return fmt.Errorf("%w: follow endpoint does not exist", models.ErrIntegrity)
		}
		edge := models.Follows{UserBeingFollowedID: followedID, UserFollowingID: followerID}
		return tx.Create(&edge).Error
	})
	return translate(err)
}

// Unfollow removes the edge. Removing an edge that does not exist returns
// ErrNotFollowing; callers that want a no-op can check IsFollowing first.
func (r *followRepository) Unfollow(followerID, followedID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_being_followed_id = ? AND user_following_id = ?", followedID, followerID).
			Delete(&models.Follows{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFollowing
		}
		return nil
	})
	return translate(err)
}

func (r *followRepository) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follows{}).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, translate(err)
}

// IsFollowedBy is the exact inverse of IsFollowing with the ids swapped.
func (r *followRepository) IsFollowedBy(userID, followerID uint) (bool, error) {
	return r.IsFollowing(followerID, userID)
}

func (r *followRepository) FollowersOf(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("INNER JOIN follows ON follows.user_following_id = users.id").
		Where("follows.user_being_followed_id = ?", userID).
		Find(&users).Error
	return users, translate(err)
}

func (r *followRepository) FollowingOf(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("INNER JOIN follows ON follows.user_being_followed_id = users.id").
		Where("follows.user_following_id = ?", userID).
		Find(&users).Error
	return users, translate(err)
}
