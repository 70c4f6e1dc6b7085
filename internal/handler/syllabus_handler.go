package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/utils"
)

// SyllabusHandler serves per-subject syllabus coverage.
type SyllabusHandler struct {
	service service.SyllabusService
	logger  zerolog.Logger
}

// NewSyllabusHandler constructs the syllabus handler.
func NewSyllabusHandler(service service.SyllabusService, logger zerolog.Logger) *SyllabusHandler {
	return &SyllabusHandler{
		service: service,
		logger:  logger.With().Str("component", "syllabus_handler").Logger(),
	}
}

// Register wires syllabus routes.
func (h *SyllabusHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:code", h.subject)
}

func (h *SyllabusHandler) list(c *fiber.Ctx) error {
	subjects, err := h.service.List(requestContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list syllabus")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load syllabus")
	}
	return utils.SendSuccess(c, "syllabus retrieved", subjects)
}

func (h *SyllabusHandler) subject(c *fiber.Ctx) error {
	subject, err := h.service.Subject(requestContext(c), c.Params("code"))
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Str("subject_code", c.Params("code")).Msg("failed to load subject syllabus")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load syllabus")
	}
	return utils.SendSuccess(c, "subject syllabus retrieved", subject)
}
