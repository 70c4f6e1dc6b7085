package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/utils"
)

// AcademicsHandler serves assessments, deadlines and the academic overview.
type AcademicsHandler struct {
	service service.AcademicsService
	logger  zerolog.Logger
}

// NewAcademicsHandler constructs the academics handler.
func NewAcademicsHandler(service service.AcademicsService, logger zerolog.Logger) *AcademicsHandler {
	return &AcademicsHandler{
		service: service,
		logger:  logger.With().Str("component", "academics_handler").Logger(),
	}
}

// Register wires academics routes.
func (h *AcademicsHandler) Register(router fiber.Router) {
	router.Get("/overview", h.overview)
	router.Get("/assessments", h.assessments)
	router.Get("/deadlines", h.deadlines)
}

func (h *AcademicsHandler) overview(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	overview, err := h.service.Overview(requestContext(c), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("failed to build academics overview")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load academics")
	}
	return utils.SendSuccess(c, "academics overview retrieved", overview)
}

func (h *AcademicsHandler) assessments(c *fiber.Ctx) error {
	query := dto.AssessmentQuery{
		Filter:      c.Query("filter"),
		SubjectCode: c.Query("subject"),
	}

	assessments, err := h.service.Assessments(requestContext(c), query)
	if err != nil {
		if isValidationError(err) {
			return utils.Fail(c, fiber.StatusBadRequest, "invalid assessment filter", validationDetails(err))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list assessments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load assessments")
	}
	return utils.OK(c, assessments, "assessments retrieved", fiber.Map{"count": len(assessments)})
}

func (h *AcademicsHandler) deadlines(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil || limit < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	if limit == 0 {
		limit = service.DefaultDeadlineLimit
	}

	deadlines, err := h.service.Deadlines(requestContext(c), limit)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list deadlines")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load deadlines")
	}
	return utils.SendSuccess(c, "deadlines retrieved", deadlines)
}
