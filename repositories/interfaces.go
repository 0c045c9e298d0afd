package repositories

import "warbler/models"

// ProfileUpdate carries the profile fields to change; nil pointers leave the
// stored value untouched. The password is only re-hashed when one is given.
type ProfileUpdate struct {
	Username       *string
	Email          *string
	Password       *string
	ImageURL       *string
	HeaderImageURL *string
	Bio            *string
	Location       *string
}

type UserRepository interface {
	Signup(username, email, password, imageURL string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error)
	Delete(userID uint) error
	ByID(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	Search(query string) ([]models.User, error)
	All() ([]models.User, error)
}

type FollowRepository interface {
	Follow(followerID, followedID uint) error
	Unfollow(followerID, followedID uint) error
	IsFollowing(followerID, followedID uint) (bool, error)
	IsFollowedBy(userID, followerID uint) (bool, error)
	FollowersOf(userID uint) ([]models.User, error)
	FollowingOf(userID uint) ([]models.User, error)
}

type MessageRepository interface {
	Post(authorID uint, text string) (*models.Message, error)
	Delete(messageID, requesterID uint) error
	ByID(id uint) (*models.Message, error)
	RecentByUser(userID uint, limit int) ([]models.Message, error)
}

type LikeRepository interface {
	Toggle(userID, messageID uint) (models.LikeState, error)
	IsLikedBy(userID, messageID uint) (bool, error)
	LikedMessageIDs(userID uint) ([]uint, error)
	LikedMessages(userID uint) ([]models.Message, error)
}

type FeedRepository interface {
	HomeFeed(userID uint) ([]models.Message, error)
	PublicFeed(limit int) ([]models.Message, error)
}
