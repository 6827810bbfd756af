package service

import (
	"context"

	"github.com/dmc103/backend-pawstagram/internal/models"
	"github.com/dmc103/backend-pawstagram/internal/repository"
)

// FollowService provides social-graph mutation and query logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge from caller to target.
func (s *FollowService) Follow(ctx context.Context, callerID, targetID uint) error {
	if callerID == targetID {
		return models.NewSelfReferenceError("Action is not valid, you cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, callerID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	following, err := s.followRepo.Exists(ctx, callerID, targetID)
	if err != nil {
		return err
	}
	if following {
		return models.NewConflictError("You are already following this user")
	}

	// The unique index on (follower_id, followee_id) turns a concurrent
	// duplicate into a Conflict from the repository.
	return s.followRepo.Create(ctx, &models.Follow{
		FollowerID: callerID,
		FolloweeID: targetID,
	})
}

// Unfollow removes the follow edge from caller to target. The caller must
// currently be following the target.
func (s *FollowService) Unfollow(ctx context.Context, callerID, targetID uint) error {
	if callerID == targetID {
		return models.NewSelfReferenceError("Action is not valid, you cannot unfollow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, callerID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	following, err := s.followRepo.Exists(ctx, callerID, targetID)
	if err != nil {
		return err
	}
	if !following {
		return models.NewConflictError("You are not following this user")
	}

	return s.followRepo.Delete(ctx, callerID, targetID)
}

// IsFollowing reports whether caller currently follows target.
func (s *FollowService) IsFollowing(ctx context.Context, callerID, targetID uint) (bool, error) {
	return s.followRepo.Exists(ctx, callerID, targetID)
}

// Followers lists everyone following the user.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

// Following lists everyone the user follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}
