package models

import "time"

// MeetupParticipant is the join record linking a user to a meetup they are
// attending. The (user_id, meetup_id) pair is unique at the database level,
// which is what actually prevents duplicate joins under a race.
type MeetupParticipant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_participants_user_meetup" json:"user_id"`
	MeetupID  uint      `gorm:"not null;uniqueIndex:idx_participants_user_meetup" json:"meetup_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
