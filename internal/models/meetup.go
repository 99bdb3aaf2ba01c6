package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity restricts what kind of outdoor event a meetup is.
type Activity string

const (
	// ActivityRun is a running meetup.
	ActivityRun Activity = "run"
	// ActivityBicycle is a cycling meetup.
	ActivityBicycle Activity = "bicycle"
)

// Valid reports whether the activity is one of the allowed values.
func (a Activity) Valid() bool {
	return a == ActivityRun || a == ActivityBicycle
}

// Meetup is a scheduled outdoor-activity event with a geocoded location,
// an organizer, and a participant list.
type Meetup struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	Title         string              `gorm:"not null" json:"title"`
	Activity      Activity            `gorm:"type:varchar(20);not null" json:"activity"`
	StartDateTime time.Time           `gorm:"not null" json:"start_date_time"`
	EndDateTime   time.Time           `gorm:"not null" json:"end_date_time"`
	Guests        int                 `json:"guests"`
	UserID        uint                `gorm:"not null" json:"-"`
	User          *User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Location      *Location           `gorm:"polymorphic:Locatable;polymorphicValue:Meetup" json:"location,omitempty"`
	Participants  []MeetupParticipant `gorm:"foreignKey:MeetupID" json:"meetup_participants"`
	Comments      []Comment           `gorm:"polymorphic:Commentable;polymorphicValue:Meetup" json:"comments,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"-"`
}
