package server

import (
	"io"
	"mime/multipart"

	"github.com/dmc103/backend-pawstagram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// maxUploadBytes caps image uploads at 8 MiB.
const maxUploadBytes = 8 << 20

// mapAppError translates an application error into the HTTP response for it.
// Unknown error types are wrapped so internals never reach the client.
func mapAppError(c *fiber.Ctx, err error) error {
	appErr, ok := err.(*models.AppError)
	if !ok {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.CodeValidation, models.CodeConflict, models.CodeSelfReference:
		status = fiber.StatusBadRequest
	case models.CodeUnauthenticated:
		status = fiber.StatusUnauthorized
	case models.CodeForbidden:
		status = fiber.StatusForbidden
	case models.CodeNotFound:
		status = fiber.StatusNotFound
	}

	return models.RespondWithError(c, status, appErr)
}

// parseIDParam reads a positive integer route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid " + name + " parameter")
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// uploadImage stores a multipart image through the blob store and returns its
// public URL.
func (s *Server) uploadImage(c *fiber.Ctx, fh *multipart.FileHeader, folder string) (string, error) {
	if s.blob == nil {
		return "", models.NewValidationError("Image uploads are not enabled")
	}
	if fh.Size > maxUploadBytes {
		return "", models.NewValidationError("Image exceeds the maximum upload size")
	}

	f, err := fh.Open()
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if len(content) > maxUploadBytes {
		return "", models.NewValidationError("Image exceeds the maximum upload size")
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.blob.Upload(c.UserContext(), folder, fh.Filename, contentType, content)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return url, nil
}
