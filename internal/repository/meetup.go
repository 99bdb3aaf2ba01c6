package repository

import (
	"context"
	"errors"
	"time"

	"milemeet/internal/cache"
	"milemeet/internal/models"
	"milemeet/internal/observability"

	"gorm.io/gorm"
)

// MeetupRepository defines persistence operations for meetups.
type MeetupRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Meetup, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Meetup, error)
	GetByIDWithComments(ctx context.Context, id uint) (*models.Meetup, error)
	Create(ctx context.Context, meetup *models.Meetup) error
	Update(ctx context.Context, meetup *models.Meetup) error
	Delete(ctx context.Context, id uint) error
}

type meetupRepository struct {
	db *gorm.DB
}

// NewMeetupRepository returns a new MeetupRepository implementation.
func NewMeetupRepository(db *gorm.DB) MeetupRepository {
	return &meetupRepository{db: db}
}

// withAssociations preloads everything the list/detail payloads embed.
func (r *meetupRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Location").
		Preload("Participants").
		Preload("Participants.User")
}

func (r *meetupRepository) List(ctx context.Context, limit, offset int) ([]models.Meetup, int64, error) {
	defer observability.ObserveQuery("list", "meetups", time.Now())
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Meetup{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var meetups []models.Meetup
	err := r.withAssociations(ctx).
		Order("start_date_time asc").
		Limit(limit).
		Offset(offset).
		Find(&meetups).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return meetups, total, nil
}

func (r *meetupRepository) GetByID(ctx context.Context, id uint) (*models.Meetup, error) {
	defer observability.ObserveQuery("get", "meetups", time.Now())
	var meetup models.Meetup
	if err := r.withAssociations(ctx).First(&meetup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Meetup", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &meetup, nil
}

func (r *meetupRepository) GetByIDWithComments(ctx context.Context, id uint) (*models.Meetup, error) {
	defer observability.ObserveQuery("get_with_comments", "meetups", time.Now())
	var meetup models.Meetup
	err := r.withAssociations(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Comments.User").
		First(&meetup, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Meetup", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &meetup, nil
}

func (r *meetupRepository) Create(ctx context.Context, meetup *models.Meetup) error {
	defer observability.ObserveQuery("create", "meetups", time.Now())
	return r.db.WithContext(ctx).Create(meetup).Error
}

func (r *meetupRepository) Update(ctx context.Context, meetup *models.Meetup) error {
	defer observability.ObserveQuery("update", "meetups", time.Now())
	// Save cascades to the nested location via the polymorphic association.
	if err := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(meetup).Error; err != nil {
		return err
	}
	cache.InvalidateMeetup(ctx, meetup.ID)
	return nil
}

func (r *meetupRepository) Delete(ctx context.Context, id uint) error {
	defer observability.ObserveQuery("delete", "meetups", time.Now())
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meetup_id = ?", id).Delete(&models.MeetupParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("commentable_type = ? AND commentable_id = ?", models.CommentableTypeMeetup, id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("locatable_type = ? AND locatable_id = ?", models.LocatableTypeMeetup, id).
			Delete(&models.Location{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Meetup{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMeetup(ctx, id)
	return nil
}
