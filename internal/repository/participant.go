package repository

import (
	"context"
	"errors"
	"time"

	"milemeet/internal/models"
	"milemeet/internal/observability"

	"gorm.io/gorm"
)

// ErrDuplicateParticipant reports a join attempt that violated the
// (user_id, meetup_id) uniqueness constraint.
var ErrDuplicateParticipant = errors.New("participant already joined")

// ParticipantRepository defines persistence operations for meetup participants.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.MeetupParticipant) error
	GetByUserAndMeetup(ctx context.Context, userID, meetupID uint) (*models.MeetupParticipant, error)
	Delete(ctx context.Context, userID, meetupID uint) error
}

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository returns a new ParticipantRepository implementation.
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

// Create inserts the join record. Uniqueness is enforced by the database
// index, not application logic, so concurrent duplicate joins lose cleanly.
func (r *participantRepository) Create(ctx context.Context, participant *models.MeetupParticipant) error {
	defer observability.ObserveQuery("create", "meetup_participants", time.Now())
	if err := r.db.WithContext(ctx).Create(participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateParticipant
		}
		return models.NewInternalError(err)
	}
	return r.db.WithContext(ctx).Preload("User").First(participant, participant.ID).Error
}

func (r *participantRepository) GetByUserAndMeetup(ctx context.Context, userID, meetupID uint) (*models.MeetupParticipant, error) {
	defer observability.ObserveQuery("get", "meetup_participants", time.Now())
	var participant models.MeetupParticipant
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND meetup_id = ?", userID, meetupID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("MeetupParticipant", meetupID)
		}
		return nil, models.NewInternalError(err)
	}
	return &participant, nil
}

func (r *participantRepository) Delete(ctx context.Context, userID, meetupID uint) error {
	defer observability.ObserveQuery("delete", "meetup_participants", time.Now())
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND meetup_id = ?", userID, meetupID).
		Delete(&models.MeetupParticipant{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("MeetupParticipant", meetupID)
	}
	return nil
}
