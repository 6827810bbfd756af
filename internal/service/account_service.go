// Package service implements the business logic sitting between the HTTP
// handlers and the repositories.
package service

import (
	"context"

	"github.com/dmc103/backend-pawstagram/internal/models"
	"github.com/dmc103/backend-pawstagram/internal/repository"
	"github.com/dmc103/backend-pawstagram/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AccountService provides profile management and account lifecycle logic.
type AccountService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput is the allow-list of updatable profile fields.
// Username, first and last name are applied only when non-empty; pointer
// fields are merged verbatim when supplied, which also permits clearing.
type UpdateProfileInput struct {
	UserID     uint
	Username   string
	FirstName  string
	LastName   string
	Password   string
	Bio        *string
	City       *string
	Country    *string
	Pets       *[]models.PetTag
	ProfilePic string
	CoverPic   string
}

// NewAccountService returns a new AccountService.
func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// GetUser returns a user by ID.
func (s *AccountService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns all users except excludeID.
func (s *AccountService) ListUsers(ctx context.Context, excludeID uint, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, excludeID, limit, offset)
}

// GetUsersByIDs batch-fetches user records; identifiers that do not resolve
// are silently omitted.
func (s *AccountService) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	return s.userRepo.GetByIDs(ctx, ids)
}

const maxBioLen = 500

// UpdateProfile applies a partial update to the stored user record.
func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.City != nil {
		user.City = *in.City
	}
	if in.Country != nil {
		user.Country = *in.Country
	}
	if in.Pets != nil {
		if err := validation.ValidatePetTags(*in.Pets); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Pets = *in.Pets
	}
	if in.ProfilePic != "" {
		user.ProfilePic = in.ProfilePic
	}
	if in.CoverPic != "" {
		user.CoverPic = in.CoverPic
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount deletes the target account. Only the authenticated caller may
// delete their own account.
func (s *AccountService) DeleteAccount(ctx context.Context, callerID, targetID uint) error {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if callerID != targetID {
		return models.NewForbiddenError("Request denied, you are unauthorized to delete this user")
	}
	return s.userRepo.Delete(ctx, targetID)
}

// SetOnlineStatus toggles the online flag. Idempotent.
func (s *AccountService) SetOnlineStatus(ctx context.Context, userID uint, online bool) (*models.User, error) {
	if err := s.userRepo.SetOnline(ctx, userID, online); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}
