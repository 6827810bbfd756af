package server

import (
	"strings"

	"github.com/dmc103/backend-pawstagram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts/create. Accepts JSON with a description
// and an image URL, or multipart form data with an image file that is uploaded
// to the blob store.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var description, imageURL string

	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid multipart form"))
		}
		if vs := form.Value["desc"]; len(vs) > 0 {
			description = vs[0]
		}
		if fhs := form.File["image"]; len(fhs) > 0 {
			url, err := s.uploadImage(c, fhs[0], "posts")
			if err != nil {
				return mapAppError(c, err)
			}
			imageURL = url
		}
	} else {
		var req struct {
			Description string `json:"desc"`
			ImageURL    string `json:"imageUrl"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		description = req.Description
		imageURL = req.ImageURL
	}

	post, err := s.posts.CreatePost(c.UserContext(), userID, description, imageURL)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(post)
}

// GetPosts handles GET /api/posts/all
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	viewerID, _ := s.optionalUserID(c)

	posts, err := s.posts.ListPosts(c.UserContext(), limit, offset, viewerID)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	viewerID, _ := s.optionalUserID(c)
	post, err := s.posts.GetPost(c.UserContext(), id, viewerID)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	var req struct {
		Description string `json:"desc"`
		ImageURL    string `json:"imageUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.posts.UpdatePost(c.UserContext(), currentUserID(c), id, req.Description, req.ImageURL)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	if err := s.posts.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post has been deleted"})
}

// LikePost handles PUT /api/posts/:id/like. Toggles the caller's like and
// returns the refreshed post with its liker list.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	post, likers, err := s.posts.ToggleLike(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return mapAppError(c, err)
	}

	message := "Post has been liked"
	if !post.Liked {
		message = "Post has been unliked"
	}

	return c.JSON(fiber.Map{
		"message": message,
		"post":    post,
		"likes":   likers,
	})
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.posts.AddComment(c.UserContext(), currentUserID(c), id, req.Text)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(fiber.Map{"comment": comment})
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	comments, err := s.posts.ListComments(c.UserContext(), id)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(comments)
}

// GetTimeline handles GET /api/posts/timeline/:userId
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return mapAppError(c, err)
	}

	limit := c.QueryInt("limit", 20)

	posts, err := s.timeline.Timeline(c.UserContext(), userID, limit)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(posts)
}
