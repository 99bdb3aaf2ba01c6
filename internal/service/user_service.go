// Package service holds the business rules between HTTP handlers and repositories.
package service

import (
	"context"

	"milemeet/internal/models"
	"milemeet/internal/repository"
	"milemeet/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles signup and credential checks.
type UserService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

// SignupInput carries the fields of the nested signup payload.
type SignupInput struct {
	FirstName            string
	LastName             string
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *UserService {
	return &UserService{userRepo: userRepo, profileRepo: profileRepo}
}

// Signup validates and creates a user together with an empty profile.
// Validation failures are collected into a single error so the client can
// surface every message at once.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	var errs []string

	if in.FirstName == "" {
		errs = append(errs, "First name can't be blank")
	}
	if in.LastName == "" {
		errs = append(errs, "Last name can't be blank")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		errs = append(errs, "Username "+err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		errs = append(errs, "Email "+err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		errs = append(errs, "Password "+err.Error())
	}
	if in.PasswordConfirmation != "" && in.PasswordConfirmation != in.Password {
		errs = append(errs, "Password confirmation doesn't match Password")
	}
	if len(errs) > 0 {
		return nil, models.NewValidationError(errs...)
	}

	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username has already been taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email has already been taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}

	// Every user gets an empty profile at signup.
	if err := s.profileRepo.Create(ctx, &models.Profile{UserID: user.ID}); err != nil {
		return nil, models.NewInternalError(err)
	}

	return user, nil
}

// Authenticate checks username/password and returns the user on success.
// The failure message never distinguishes a missing user from a wrong
// password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}

	return user, nil
}
