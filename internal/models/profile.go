package models

import "time"

// MaxBioLen bounds the profile bio, mirroring the comment content bound.
const MaxBioLen = 2000

// Profile holds the free-form bio for a user. Exactly one profile exists per
// user; it is created empty at signup.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Bio       string    `gorm:"type:text" json:"bio"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
