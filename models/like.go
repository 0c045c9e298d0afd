package models

// Like marks that a user liked a message. The (user, message) pair is unique;
// presence or absence of the row is the only state.
type Like struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_like_user_message" json:"user_id"`
	MessageID uint `gorm:"not null;uniqueIndex:idx_like_user_message" json:"message_id"`
}

// TableName overrides the table name used by GORM
func (Like) TableName() string {
	return "likes"
}

// LikeState reports which side of the like toggle an operation landed on.
type LikeState string

const (
	Liked   LikeState = "liked"
	Unliked LikeState = "unliked"
)
