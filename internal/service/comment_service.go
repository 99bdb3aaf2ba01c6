package service

import (
	"context"
	"unicode/utf8"

	"milemeet/internal/cache"
	"milemeet/internal/models"
	"milemeet/internal/repository"
)

// CommentsPerPage is the page size for the comment collection endpoint.
const CommentsPerPage = 10

// CommentService handles comment creation and paginated listing for meetups.
type CommentService struct {
	commentRepo repository.CommentRepository
	meetupRepo  repository.MeetupRepository
}

// CreateCommentInput carries the nested comment payload.
type CreateCommentInput struct {
	UserID   uint
	MeetupID uint
	Content  string
}

// CommentPage is one page of a meetup's comments.
type CommentPage struct {
	Comments    []models.Comment
	TotalPages  int
	CurrentPage int
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, meetupRepo repository.MeetupRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, meetupRepo: meetupRepo}
}

// Create validates and persists a comment on a meetup.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.meetupRepo.GetByID(ctx, in.MeetupID); err != nil {
		return nil, err
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content can't be blank")
	}
	if utf8.RuneCountInString(in.Content) > models.MaxCommentLen {
		return nil, models.NewValidationError("Content is too long (maximum is 2000 characters)")
	}

	comment := &models.Comment{
		Content:         in.Content,
		UserID:          in.UserID,
		CommentableType: models.CommentableTypeMeetup,
		CommentableID:   in.MeetupID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	// The cached extended meetup view embeds comments.
	cache.InvalidateMeetup(ctx, in.MeetupID)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// List returns one page of a meetup's comments in chronological order.
func (s *CommentService) List(ctx context.Context, meetupID uint, page int) (*CommentPage, error) {
	if _, err := s.meetupRepo.GetByID(ctx, meetupID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}

	comments, total, err := s.commentRepo.ListByCommentable(
		ctx, models.CommentableTypeMeetup, meetupID, CommentsPerPage, (page-1)*CommentsPerPage)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + CommentsPerPage - 1) / CommentsPerPage)
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return &CommentPage{
		Comments:    comments,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}
