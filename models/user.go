package models

// Profile art applied at signup when the caller supplies none. These are
// explicit constants rather than schema-level column defaults so the layer,
// not the store, decides what a fresh profile looks like.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents a registered user.
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Email          string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PwHash         string `gorm:"column:pw_hash;not null" json:"-"`
	ImageURL       string `gorm:"column:image_url" json:"image_url"`
	HeaderImageURL string `gorm:"column:header_image_url" json:"header_image_url"`
	Bio            string `json:"bio"`
	Location       string `json:"location"`
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "users"
}
