package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmc103/backend-pawstagram/internal/models"
	"github.com/dmc103/backend-pawstagram/internal/repository"
)

// timelineFetchLimit caps the number of concurrent per-followee queries.
const timelineFetchLimit = 8

// TimelineService assembles a user's feed from their own posts and the posts
// of everyone they follow.
type TimelineService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewTimelineService returns a new TimelineService.
func NewTimelineService(postRepo repository.PostRepository, followRepo repository.FollowRepository, userRepo repository.UserRepository) *TimelineService {
	return &TimelineService{
		postRepo:   postRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Timeline returns the user's own posts newest-first, followed by each
// followee's posts in follow order. Followee posts are fetched concurrently
// and reassembled in a stable order.
func (s *TimelineService) Timeline(ctx context.Context, userID uint, limit int) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	ownPosts, err := s.postRepo.GetByUserID(ctx, userID, limit, 0, userID)
	if err != nil {
		return nil, err
	}

	followeeIDs, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([][]*models.Post, len(followeeIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(timelineFetchLimit)
	for i, id := range followeeIDs {
		i, id := i, id
		g.Go(func() error {
			posts, err := s.postRepo.GetByUserID(gctx, id, limit, 0, userID)
			if err != nil {
				return err
			}
			results[i] = posts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	timeline := ownPosts
	for _, posts := range results {
		timeline = append(timeline, posts...)
	}
	return timeline, nil
}
