package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/utils"
)

const maxPhotoFormBytes = 5 << 20

// ProfileHandler serves and edits the student identity record.
type ProfileHandler struct {
	service service.ProfileService
	logger  zerolog.Logger
}

// NewProfileHandler constructs the profile handler.
func NewProfileHandler(service service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register wires profile routes.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Patch("", middleware.WithAuth(h.update, middleware.AuthOptions{Role: middleware.AuthRoleStudent}))
	router.Post("/photos/:kind", middleware.WithAuth(h.previewPhoto, middleware.AuthOptions{Role: middleware.AuthRoleStudent}))
}

func (h *ProfileHandler) get(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	profile, err := h.service.Get(requestContext(c), studentID)
	if err != nil {
		return h.profileError(c, err, studentID)
	}
	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *ProfileHandler) update(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Update(requestContext(c), studentID, payload)
	if err != nil {
		return h.profileError(c, err, studentID)
	}
	return utils.OK(c, updated.Profile, "Profile updated successfully!", fiber.Map{"changed_fields": updated.ChangedFields})
}

func (h *ProfileHandler) previewPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "photo is required")
	}
	if file.Size > maxPhotoFormBytes {
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, service.ErrPhotoTooLarge.Error())
	}

	reader, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "photo could not be read")
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxPhotoFormBytes+1))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "photo could not be read")
	}

	preview, err := h.service.PreviewPhoto(requestContext(c), c.Params("kind"), data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPhotoKind):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPhotoTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, service.ErrUnsupportedPhoto):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, service.ErrUnsupportedPhoto.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("photo preview failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to process photo")
		}
	}
	return utils.SendSuccess(c, "photo preview ready", preview)
}

func (h *ProfileHandler) profileError(c *fiber.Ctx, err error, studentID uint) error {
	switch {
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "invalid profile fields", validationDetails(err))
	case errors.Is(err, service.ErrNoProfileChanges):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "No changes detected.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "profile not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("profile operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
}
