package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"milemeet/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var meetupTitleTemplates = []string{
	"%s Morning Run",
	"%s Trail Run",
	"%s Gravel Ride",
	"%s Sunset Ride",
	"%s 10K Training",
	"Ride Around %s",
	"Run Through %s",
}

// CreateUser persists a user with a hashed password and an empty profile.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, f.rand.Intn(10000)))

	user := &models.User{
		FirstName: first,
		LastName:  last,
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		Password:  string(hashed),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	profile := &models.Profile{UserID: user.ID, Bio: gofakeit.Sentence(12)}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildMeetup constructs a meetup with a nested location but does not persist it.
func (f *Factory) BuildMeetup(organizer *models.User, overrides ...func(*models.Meetup)) *models.Meetup {
	activity := models.ActivityRun
	if f.rand.Intn(2) == 0 {
		activity = models.ActivityBicycle
	}

	city := gofakeit.City()
	start := time.Now().Add(time.Duration(1+f.rand.Intn(30*24)) * time.Hour).Truncate(time.Minute)

	meetup := &models.Meetup{
		Title:         fmt.Sprintf(meetupTitleTemplates[f.rand.Intn(len(meetupTitleTemplates))], city),
		Activity:      activity,
		StartDateTime: start,
		EndDateTime:   start.Add(time.Duration(1+f.rand.Intn(4)) * time.Hour),
		Guests:        f.rand.Intn(12),
		UserID:        organizer.ID,
		Location: &models.Location{
			Address: gofakeit.Street(),
			City:    city,
			State:   gofakeit.StateAbr(),
			ZipCode: gofakeit.Zip(),
			Country: "US",
		},
	}
	for _, override := range overrides {
		override(meetup)
	}
	return meetup
}

// CreateMeetup persists a meetup built from BuildMeetup.
func (f *Factory) CreateMeetup(organizer *models.User, overrides ...func(*models.Meetup)) (*models.Meetup, error) {
	meetup := f.BuildMeetup(organizer, overrides...)
	if err := f.db.Create(meetup).Error; err != nil {
		return nil, err
	}
	return meetup, nil
}

// CreateComment persists a comment by the given user on the given meetup.
func (f *Factory) CreateComment(user *models.User, meetup *models.Meetup) (*models.Comment, error) {
	comment := &models.Comment{
		Content:         gofakeit.Sentence(8 + f.rand.Intn(10)),
		UserID:          user.ID,
		CommentableType: models.CommentableTypeMeetup,
		CommentableID:   meetup.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// JoinMeetup persists a participant record, ignoring duplicate joins.
func (f *Factory) JoinMeetup(user *models.User, meetup *models.Meetup) error {
	participant := &models.MeetupParticipant{UserID: user.ID, MeetupID: meetup.ID}
	err := f.db.Create(participant).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
