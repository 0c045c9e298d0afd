package models

// Follows is a directed edge: UserFollowingID follows UserBeingFollowedID.
// The composite primary key keeps the pair unique; a duplicate follow is a
// constraint violation, not a silent no-op.
type Follows struct {
	UserBeingFollowedID uint `gorm:"primaryKey;autoIncrement:false;column:user_being_followed_id" json:"user_being_followed_id"`
	UserFollowingID     uint `gorm:"primaryKey;autoIncrement:false;column:user_following_id" json:"user_following_id"`
}

// TableName overrides the table name used by GORM
func (Follows) TableName() string {
	return "follows"
}
