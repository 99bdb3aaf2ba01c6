package models

import "time"

// Locatable type tags for the polymorphic location association.
const (
	LocatableTypeMeetup = "Meetup"
	LocatableTypeUser   = "User"
)

// Location is a postal address attached polymorphically to a meetup or a user.
// All five address fields are required; zip_code must be 5-digit or ZIP+4.
type Location struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Address       string    `gorm:"not null" json:"address"`
	City          string    `gorm:"not null" json:"city"`
	State         string    `gorm:"not null" json:"state"`
	ZipCode       string    `gorm:"not null" json:"zip_code"`
	Country       string    `gorm:"not null" json:"country"`
	LocatableType string    `gorm:"not null;index:idx_locations_locatable" json:"-"`
	LocatableID   uint      `gorm:"not null;index:idx_locations_locatable" json:"-"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
