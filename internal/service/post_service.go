package service

import (
	"context"
	"fmt"

	"github.com/dmc103/backend-pawstagram/internal/models"
	"github.com/dmc103/backend-pawstagram/internal/repository"
)

// PostService provides post creation, ownership-gated mutation, like toggling
// and comment appending.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// CreatePost stores a new post. The author is the resolved caller identity,
// never a client-supplied value.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, description, imageURL string) (*models.Post, error) {
	if description == "" && imageURL == "" {
		return nil, models.NewValidationError("A post needs a description or an image")
	}
	if len(description) > models.MaxPostDescriptionLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Description too long (max %d characters)", models.MaxPostDescriptionLen))
	}

	post := &models.Post{
		UserID:      authorID,
		Description: description,
		ImageURL:    imageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with the author projection and computed fields.
	return s.postRepo.GetByID(ctx, post.ID, authorID)
}

// GetPost returns a single post.
func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, currentUserID)
}

// ListPosts returns all posts newest-first.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

// ListUserPosts returns one user's posts newest-first.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// UpdatePost applies a partial update. Only the author may update.
func (s *PostService) UpdatePost(ctx context.Context, callerID, postID uint, description, imageURL string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, callerID)
	if err != nil {
		return nil, err
	}
	if post.UserID != callerID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if len(description) > models.MaxPostDescriptionLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Description too long (max %d characters)", models.MaxPostDescriptionLen))
	}
	if description != "" {
		post.Description = description
	}
	if imageURL != "" {
		post.ImageURL = imageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, callerID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, callerID)
	if err != nil {
		return err
	}
	if post.UserID != callerID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the caller's like membership on the post: liked becomes
// unliked and vice versa. Returns the refreshed post and its liker list.
func (s *PostService) ToggleLike(ctx context.Context, callerID, postID uint) (*models.Post, []models.UserSummary, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, callerID); err != nil {
		return nil, nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, callerID, postID)
	if err != nil {
		return nil, nil, err
	}

	if liked {
		err = s.postRepo.Unlike(ctx, callerID, postID)
	} else {
		err = s.postRepo.Like(ctx, callerID, postID)
	}
	if err != nil {
		return nil, nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID, callerID)
	if err != nil {
		return nil, nil, err
	}
	likers, err := s.postRepo.Likers(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	return post, likers, nil
}

// AddComment appends a comment to the post. The author identity and the
// denormalized display fields are taken from the stored user record, not from
// the request.
func (s *PostService) AddComment(ctx context.Context, callerID, postID uint, text string) (*models.Comment, error) {
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > models.MaxCommentTextLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Comment too long (max %d characters)", models.MaxCommentTextLen))
	}

	if _, err := s.postRepo.GetByID(ctx, postID, callerID); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:     postID,
		UserID:     author.ID,
		AuthorName: author.Username,
		AuthorPic:  author.ProfilePic,
		Text:       text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a post's comments in append order.
func (s *PostService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
