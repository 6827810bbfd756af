package service

import (
	"context"

	"github.com/dmc103/backend-pawstagram/internal/models"
)

// Function-field stubs so each test overrides only the calls it cares about.
// Unstubbed calls return zero values.

type stubUserRepo struct {
	getByID       func(ctx context.Context, id uint) (*models.User, error)
	getByEmail    func(ctx context.Context, email string) (*models.User, error)
	getByUsername func(ctx context.Context, username string) (*models.User, error)
	getByIDs      func(ctx context.Context, ids []uint) ([]models.User, error)
	create        func(ctx context.Context, user *models.User) error
	update        func(ctx context.Context, user *models.User) error
	setOnline     func(ctx context.Context, id uint, online bool) error
	delete        func(ctx context.Context, id uint) error
	list          func(ctx context.Context, excludeID uint, limit, offset int) ([]models.User, error)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("User", id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail != nil {
		return s.getByEmail(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsername != nil {
		return s.getByUsername(ctx, username)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	if s.getByIDs != nil {
		return s.getByIDs(ctx, ids)
	}
	return nil, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.create != nil {
		return s.create(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.update != nil {
		return s.update(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) SetOnline(ctx context.Context, id uint, online bool) error {
	if s.setOnline != nil {
		return s.setOnline(ctx, id, online)
	}
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uint) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

func (s *stubUserRepo) List(ctx context.Context, excludeID uint, limit, offset int) ([]models.User, error) {
	if s.list != nil {
		return s.list(ctx, excludeID, limit, offset)
	}
	return nil, nil
}

type stubFollowRepo struct {
	create       func(ctx context.Context, follow *models.Follow) error
	delete       func(ctx context.Context, followerID, followeeID uint) error
	exists       func(ctx context.Context, followerID, followeeID uint) (bool, error)
	followers    func(ctx context.Context, userID uint) ([]models.User, error)
	following    func(ctx context.Context, userID uint) ([]models.User, error)
	followingIDs func(ctx context.Context, userID uint) ([]uint, error)
}

func (s *stubFollowRepo) Create(ctx context.Context, follow *models.Follow) error {
	if s.create != nil {
		return s.create(ctx, follow)
	}
	return nil
}

func (s *stubFollowRepo) Delete(ctx context.Context, followerID, followeeID uint) error {
	if s.delete != nil {
		return s.delete(ctx, followerID, followeeID)
	}
	return nil
}

func (s *stubFollowRepo) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if s.exists != nil {
		return s.exists(ctx, followerID, followeeID)
	}
	return false, nil
}

func (s *stubFollowRepo) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if s.followers != nil {
		return s.followers(ctx, userID)
	}
	return nil, nil
}

func (s *stubFollowRepo) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if s.following != nil {
		return s.following(ctx, userID)
	}
	return nil, nil
}

func (s *stubFollowRepo) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.followingIDs != nil {
		return s.followingIDs(ctx, userID)
	}
	return nil, nil
}

type stubPostRepo struct {
	create      func(ctx context.Context, post *models.Post) error
	getByID     func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	getByUserID func(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	list        func(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	update      func(ctx context.Context, post *models.Post) error
	delete      func(ctx context.Context, id uint) error
	isLiked     func(ctx context.Context, userID, postID uint) (bool, error)
	like        func(ctx context.Context, userID, postID uint) error
	unlike      func(ctx context.Context, userID, postID uint) error
	likers      func(ctx context.Context, postID uint) ([]models.UserSummary, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.create != nil {
		return s.create(ctx, post)
	}
	return nil
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id, currentUserID)
	}
	return nil, models.NewNotFoundError("Post", id)
}

func (s *stubPostRepo) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if s.getByUserID != nil {
		return s.getByUserID(ctx, userID, limit, offset, currentUserID)
	}
	return nil, nil
}

func (s *stubPostRepo) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if s.list != nil {
		return s.list(ctx, limit, offset, currentUserID)
	}
	return nil, nil
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	if s.update != nil {
		return s.update(ctx, post)
	}
	return nil
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

func (s *stubPostRepo) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if s.isLiked != nil {
		return s.isLiked(ctx, userID, postID)
	}
	return false, nil
}

func (s *stubPostRepo) Like(ctx context.Context, userID, postID uint) error {
	if s.like != nil {
		return s.like(ctx, userID, postID)
	}
	return nil
}

func (s *stubPostRepo) Unlike(ctx context.Context, userID, postID uint) error {
	if s.unlike != nil {
		return s.unlike(ctx, userID, postID)
	}
	return nil
}

func (s *stubPostRepo) Likers(ctx context.Context, postID uint) ([]models.UserSummary, error) {
	if s.likers != nil {
		return s.likers(ctx, postID)
	}
	return nil, nil
}

type stubCommentRepo struct {
	create     func(ctx context.Context, comment *models.Comment) error
	listByPost func(ctx context.Context, postID uint) ([]*models.Comment, error)
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.create != nil {
		return s.create(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if s.listByPost != nil {
		return s.listByPost(ctx, postID)
	}
	return nil, nil
}
