package repository

import (
	"context"
	"errors"
	"time"

	"milemeet/internal/models"
	"milemeet/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByCommentable(ctx context.Context, commentableType string, commentableID uint, limit, offset int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.ObserveQuery("create", "comments", time.Now())
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	defer observability.ObserveQuery("get", "comments", time.Now())
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByCommentable(
	ctx context.Context,
	commentableType string,
	commentableID uint,
	limit, offset int,
) ([]models.Comment, int64, error) {
	defer observability.ObserveQuery("list", "comments", time.Now())
	scope := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("commentable_type = ? AND commentable_id = ?", commentableType, commentableID)

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("commentable_type = ? AND commentable_id = ?", commentableType, commentableID).
		Order("created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}
