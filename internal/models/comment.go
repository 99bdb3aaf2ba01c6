package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxCommentLen bounds comment content.
const MaxCommentLen = 2000

// Commentable type tags for the polymorphic comment association. Meetup is
// the only commentable entity today.
const CommentableTypeMeetup = "Meetup"

// Comment is user-authored text attached polymorphically to a commentable
// entity (currently only meetups).
type Comment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Content         string         `gorm:"type:text;not null" json:"content"`
	UserID          uint           `gorm:"not null" json:"user_id"`
	User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CommentableType string         `gorm:"not null;index:idx_comments_commentable" json:"-"`
	CommentableID   uint           `gorm:"not null;index:idx_comments_commentable" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
