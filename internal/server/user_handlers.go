package server

import (
	"strings"

	"github.com/dmc103/backend-pawstagram/internal/models"
	"github.com/dmc103/backend-pawstagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUser handles GET /api/user/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	user, err := s.accounts.GetUser(c.UserContext(), id)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(user)
}

// GetUsers handles GET /api/user/users. Returns everyone except the caller.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	users, err := s.accounts.ListUsers(c.UserContext(), currentUserID(c), limit, offset)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(users)
}

// GetFriends handles POST /api/user/friends. The body carries the IDs to
// resolve; unknown IDs are dropped from the result.
func (s *Server) GetFriends(c *fiber.Ctx) error {
	var req struct {
		IDs []uint `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	users, err := s.accounts.GetUsersByIDs(c.UserContext(), req.IDs)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(users)
}

// SetOnlineStatus handles POST /api/user/status
func (s *Server) SetOnlineStatus(c *fiber.Ctx) error {
	var req struct {
		IsOnline bool `json:"isOnline"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.SetOnlineStatus(c.UserContext(), currentUserID(c), req.IsOnline)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PATCH /api/user/:id/update. Accepts JSON or multipart
// form data; in multipart requests profilePic and coverPic files are uploaded
// to the blob store.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}
	if id != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only update your own profile"))
	}

	in := service.UpdateProfileInput{UserID: id}

	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid multipart form"))
		}

		value := func(key string) string {
			if vs := form.Value[key]; len(vs) > 0 {
				return vs[0]
			}
			return ""
		}
		in.Username = value("userName")
		in.FirstName = value("firstName")
		in.LastName = value("lastName")
		in.Password = value("password")
		if vs, ok := form.Value["bio"]; ok && len(vs) > 0 {
			in.Bio = &vs[0]
		}
		if vs, ok := form.Value["city"]; ok && len(vs) > 0 {
			in.City = &vs[0]
		}
		if vs, ok := form.Value["country"]; ok && len(vs) > 0 {
			in.Country = &vs[0]
		}
		if vs, ok := form.Value["pets"]; ok {
			pets := make([]models.PetTag, 0, len(vs))
			for _, v := range vs {
				pets = append(pets, models.PetTag(v))
			}
			in.Pets = &pets
		}

		if fhs := form.File["profilePic"]; len(fhs) > 0 {
			url, err := s.uploadImage(c, fhs[0], "profile")
			if err != nil {
				return mapAppError(c, err)
			}
			in.ProfilePic = url
		}
		if fhs := form.File["coverPic"]; len(fhs) > 0 {
			url, err := s.uploadImage(c, fhs[0], "cover")
			if err != nil {
				return mapAppError(c, err)
			}
			in.CoverPic = url
		}
	} else {
		var req struct {
			Username   string           `json:"userName"`
			FirstName  string           `json:"firstName"`
			LastName   string           `json:"lastName"`
			Password   string           `json:"password"`
			Bio        *string          `json:"bio"`
			City       *string          `json:"city"`
			Country    *string          `json:"country"`
			Pets       *[]models.PetTag `json:"pets"`
			ProfilePic string           `json:"profilepic"`
			CoverPic   string           `json:"coverPic"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		in.Username = req.Username
		in.FirstName = req.FirstName
		in.LastName = req.LastName
		in.Password = req.Password
		in.Bio = req.Bio
		in.City = req.City
		in.Country = req.Country
		in.Pets = req.Pets
		in.ProfilePic = req.ProfilePic
		in.CoverPic = req.CoverPic
	}

	user, err := s.accounts.UpdateProfile(c.UserContext(), in)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/user/:id/delete. Deleting another user's
// account is treated as an authorization failure.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	if err := s.accounts.DeleteAccount(c.UserContext(), currentUserID(c), id); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeForbidden {
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
		return mapAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Account has been successfully deleted"})
}

// FollowUser handles PUT /api/user/:id/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	if err := s.follows.Follow(c.UserContext(), currentUserID(c), id); err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User has been followed"})
}

// UnfollowUser handles POST /api/user/:id/unfollow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	if err := s.follows.Unfollow(c.UserContext(), currentUserID(c), id); err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User has been unfollowed"})
}

// GetFollowers handles GET /api/user/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	users, err := s.follows.Followers(c.UserContext(), id)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(users)
}

// GetFollowing handles GET /api/user/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	users, err := s.follows.Following(c.UserContext(), id)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(users)
}

// GetUserPosts handles GET /api/user/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return mapAppError(c, err)
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	viewerID, _ := s.optionalUserID(c)
	posts, err := s.posts.ListUserPosts(c.UserContext(), id, limit, offset, viewerID)
	if err != nil {
		return mapAppError(c, err)
	}
	return c.JSON(posts)
}
