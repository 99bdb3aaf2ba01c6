package client

import "time"

// UserSummary is the public user representation embedded in API payloads.
type UserSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// Location is a meetup's postal address.
type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Participant is a join record linking a user to a meetup.
type Participant struct {
	ID       uint         `json:"id"`
	UserID   uint         `json:"user_id"`
	MeetupID uint         `json:"meetup_id"`
	User     *UserSummary `json:"user,omitempty"`
}

// Comment is user-authored text on a meetup.
type Comment struct {
	ID        uint         `json:"id"`
	Content   string       `json:"content"`
	UserID    uint         `json:"user_id"`
	User      *UserSummary `json:"user,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Meetup is a scheduled outdoor-activity event as returned by the API.
type Meetup struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Activity      string        `json:"activity"`
	StartDateTime time.Time     `json:"start_date_time"`
	EndDateTime   time.Time     `json:"end_date_time"`
	Guests        int           `json:"guests"`
	User          *UserSummary  `json:"user,omitempty"`
	Location      *Location     `json:"location,omitempty"`
	Participants  []Participant `json:"meetup_participants"`
	Comments      []Comment     `json:"comments,omitempty"`
}

// MeetupDraft is the outbound create/update payload.
type MeetupDraft struct {
	Title         string    `json:"title"`
	Activity      string    `json:"activity"`
	StartDateTime time.Time `json:"start_date_time"`
	EndDateTime   time.Time `json:"end_date_time"`
	Guests        int       `json:"guests"`
	Location      Location  `json:"location_attributes"`
}

// SignupPayload is the outbound signup form.
type SignupPayload struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Profile is a user's profile record.
type Profile struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Bio    string `json:"bio"`
}
