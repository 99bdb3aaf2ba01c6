package service

import (
	"context"
	"errors"
	"time"

	"milemeet/internal/cache"
	"milemeet/internal/models"
	"milemeet/internal/observability"
	"milemeet/internal/repository"
	"milemeet/internal/validation"
)

// MeetupsPerPage is the page size for the meetup collection endpoint.
const MeetupsPerPage = 25

// MeetupService handles meetup CRUD, ownership checks, and join/leave.
type MeetupService struct {
	meetupRepo      repository.MeetupRepository
	participantRepo repository.ParticipantRepository
	now             func() time.Time
}

// LocationInput carries the nested location_attributes payload.
type LocationInput struct {
	Address string
	City    string
	State   string
	ZipCode string
	Country string
}

// MeetupInput carries the nested meetup payload for create and update.
type MeetupInput struct {
	UserID        uint
	Title         string
	Activity      models.Activity
	StartDateTime time.Time
	EndDateTime   time.Time
	Guests        int
	Location      LocationInput
}

// MeetupPage is one page of the meetup collection.
type MeetupPage struct {
	Meetups     []models.Meetup
	TotalPages  int
	CurrentPage int
}

// NewMeetupService returns a new MeetupService.
func NewMeetupService(meetupRepo repository.MeetupRepository, participantRepo repository.ParticipantRepository) *MeetupService {
	return &MeetupService{
		meetupRepo:      meetupRepo,
		participantRepo: participantRepo,
		now:             time.Now,
	}
}

func (s *MeetupService) validateInput(in MeetupInput, creating bool) error {
	var errs []string

	if in.Title == "" {
		errs = append(errs, "Title can't be blank")
	}
	if !in.Activity.Valid() {
		errs = append(errs, "Activity is not included in the list")
	}
	if in.StartDateTime.IsZero() {
		errs = append(errs, "Start date time can't be blank")
	} else if creating && !in.StartDateTime.After(s.now()) {
		errs = append(errs, "Start date time must be in the future")
	}
	if in.EndDateTime.IsZero() {
		errs = append(errs, "End date time can't be blank")
	} else if !in.StartDateTime.IsZero() && !in.EndDateTime.After(in.StartDateTime) {
		errs = append(errs, "End date time must be after the start date time")
	}

	loc := in.Location
	if loc.Address == "" {
		errs = append(errs, "Location address can't be blank")
	}
	if loc.City == "" {
		errs = append(errs, "Location city can't be blank")
	}
	if loc.State == "" {
		errs = append(errs, "Location state can't be blank")
	}
	if loc.Country == "" {
		errs = append(errs, "Location country can't be blank")
	}
	if loc.ZipCode == "" {
		errs = append(errs, "Location zip code can't be blank")
	} else if err := validation.ValidateZipCode(loc.ZipCode); err != nil {
		errs = append(errs, "Location "+err.Error())
	}

	if len(errs) > 0 {
		return models.NewValidationError(errs...)
	}
	return nil
}

// List returns one page of meetups ordered by start time.
func (s *MeetupService) List(ctx context.Context, page int) (*MeetupPage, error) {
	if page < 1 {
		page = 1
	}

	meetups, total, err := s.meetupRepo.List(ctx, MeetupsPerPage, (page-1)*MeetupsPerPage)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + MeetupsPerPage - 1) / MeetupsPerPage)
	if totalPages < 1 {
		totalPages = 1
	}
	// An overflowing page yields an empty collection; the reported page is
	// clamped so current_page never exceeds total_pages.
	if page > totalPages {
		page = totalPages
	}

	return &MeetupPage{
		Meetups:     meetups,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// Get returns the extended meetup view including its comments. The view is
// cached briefly; any write to the meetup invalidates it.
func (s *MeetupService) Get(ctx context.Context, id uint) (*models.Meetup, error) {
	var meetup models.Meetup
	err := cache.Aside(ctx, cache.MeetupKey(id), &meetup, cache.MeetupTTL, func() error {
		found, err := s.meetupRepo.GetByIDWithComments(ctx, id)
		if err != nil {
			return err
		}
		meetup = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &meetup, nil
}

// Create validates and persists a meetup with its nested location.
func (s *MeetupService) Create(ctx context.Context, in MeetupInput) (*models.Meetup, error) {
	if err := s.validateInput(in, true); err != nil {
		return nil, err
	}

	meetup := &models.Meetup{
		Title:         in.Title,
		Activity:      in.Activity,
		StartDateTime: in.StartDateTime,
		EndDateTime:   in.EndDateTime,
		Guests:        in.Guests,
		UserID:        in.UserID,
		Location: &models.Location{
			Address: in.Location.Address,
			City:    in.Location.City,
			State:   in.Location.State,
			ZipCode: in.Location.ZipCode,
			Country: in.Location.Country,
		},
	}
	if err := s.meetupRepo.Create(ctx, meetup); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.MeetupsCreated.WithLabelValues(string(in.Activity)).Inc()
	return s.meetupRepo.GetByID(ctx, meetup.ID)
}

// Update validates the payload and replaces the meetup's fields and location.
// Only the creator may update.
func (s *MeetupService) Update(ctx context.Context, id uint, in MeetupInput) (*models.Meetup, error) {
	meetup, err := s.meetupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meetup.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}

	if err := s.validateInput(in, false); err != nil {
		return nil, err
	}

	meetup.Title = in.Title
	meetup.Activity = in.Activity
	meetup.StartDateTime = in.StartDateTime
	meetup.EndDateTime = in.EndDateTime
	meetup.Guests = in.Guests
	if meetup.Location == nil {
		meetup.Location = &models.Location{}
	}
	meetup.Location.Address = in.Location.Address
	meetup.Location.City = in.Location.City
	meetup.Location.State = in.Location.State
	meetup.Location.ZipCode = in.Location.ZipCode
	meetup.Location.Country = in.Location.Country

	if err := s.meetupRepo.Update(ctx, meetup); err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateMeetup(ctx, id)
	return s.meetupRepo.GetByID(ctx, id)
}

// Delete removes a meetup with its participants, comments, and location.
// Only the creator may delete.
func (s *MeetupService) Delete(ctx context.Context, id, userID uint) error {
	meetup, err := s.meetupRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if meetup.UserID != userID {
		return models.NewUnauthorizedError("Unauthorized")
	}

	if err := s.meetupRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateMeetup(ctx, id)
	return nil
}

// Join adds the user to the meetup's participant list. A duplicate join is
// rejected by the database uniqueness constraint and surfaced as a
// validation error.
func (s *MeetupService) Join(ctx context.Context, meetupID, userID uint) (*models.MeetupParticipant, error) {
	if _, err := s.meetupRepo.GetByID(ctx, meetupID); err != nil {
		return nil, err
	}

	participant := &models.MeetupParticipant{
		UserID:   userID,
		MeetupID: meetupID,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, repository.ErrDuplicateParticipant) {
			observability.ParticipantJoins.WithLabelValues("join", "duplicate").Inc()
			return nil, models.NewValidationError("User has already joined this meetup")
		}
		observability.ParticipantJoins.WithLabelValues("join", "error").Inc()
		return nil, err
	}

	observability.ParticipantJoins.WithLabelValues("join", "ok").Inc()
	cache.InvalidateMeetup(ctx, meetupID)
	return participant, nil
}

// Leave removes the user's participant record for the meetup.
func (s *MeetupService) Leave(ctx context.Context, meetupID, userID uint) error {
	if err := s.participantRepo.Delete(ctx, userID, meetupID); err != nil {
		observability.ParticipantJoins.WithLabelValues("leave", "error").Inc()
		return err
	}
	observability.ParticipantJoins.WithLabelValues("leave", "ok").Inc()
	cache.InvalidateMeetup(ctx, meetupID)
	return nil
}
