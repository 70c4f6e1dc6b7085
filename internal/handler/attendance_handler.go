package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/utils"
)

// AttendanceHandler serves the attendance ledger.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the attendance handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register wires attendance routes.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Get("/summary", h.summary)
	router.Get("/subjects", h.subjects)
	router.Get("/records", h.records)
}

func (h *AttendanceHandler) summary(c *fiber.Ctx) error {
	result, err := h.service.Summary(requestContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fold attendance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load attendance")
	}
	return utils.OK(c, result.Summary, "attendance summary retrieved", fiber.Map{"cache_hit": result.CacheHit})
}

func (h *AttendanceHandler) subjects(c *fiber.Ctx) error {
	subjects, err := h.service.Subjects(requestContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list attendance subjects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load attendance")
	}
	return utils.SendSuccess(c, "attendance subjects retrieved", subjects)
}

func (h *AttendanceHandler) records(c *fiber.Ctx) error {
	query := dto.AttendanceRecordQuery{
		SubjectCode: c.Query("subject"),
		Status:      c.Query("status"),
	}

	records, err := h.service.Records(requestContext(c), query)
	if err != nil {
		if isValidationError(err) {
			return utils.Fail(c, fiber.StatusBadRequest, "invalid attendance filter", validationDetails(err))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list attendance records")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load attendance records")
	}
	return utils.OK(c, records, "attendance records retrieved", fiber.Map{"count": len(records)})
}
