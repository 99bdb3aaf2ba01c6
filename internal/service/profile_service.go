package service

import (
	"context"
	"unicode/utf8"

	"milemeet/internal/cache"
	"milemeet/internal/models"
	"milemeet/internal/repository"
)

// ProfileService handles profile reads and bio updates, scoped to the owner.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Get returns the profile for userID. Only the owner may read it.
func (s *ProfileService) Get(ctx context.Context, requesterID, userID uint) (*models.Profile, error) {
	if requesterID != userID {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}

	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		found, err := s.profileRepo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		profile = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateBio replaces the bio for userID's profile. Only the owner may write.
func (s *ProfileService) UpdateBio(ctx context.Context, requesterID, userID uint, bio string) (*models.Profile, error) {
	if requesterID != userID {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	if utf8.RuneCountInString(bio) > models.MaxBioLen {
		return nil, models.NewValidationError("Bio is too long (maximum is 2000 characters)")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Bio = bio
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateProfile(ctx, userID)
	return profile, nil
}
