package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/utils"
)

// AssistantHandler serves the per-student assistant transcript.
type AssistantHandler struct {
	service    service.AssistantService
	rateLimit  int
	rateWindow time.Duration
	logger     zerolog.Logger
}

// NewAssistantHandler constructs the assistant handler; sends are limited to rateLimit per rateWindow.
func NewAssistantHandler(service service.AssistantService, rateLimit int, rateWindow time.Duration, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		service:    service,
		rateLimit:  rateLimit,
		rateWindow: rateWindow,
		logger:     logger.With().Str("component", "assistant_handler").Logger(),
	}
}

// Register wires assistant routes.
func (h *AssistantHandler) Register(router fiber.Router) {
	router.Get("/messages", h.history)
	router.Post("/messages", middleware.RateLimit("assistant", h.rateLimit, h.rateWindow), h.send)
}

func (h *AssistantHandler) history(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	messages, err := h.service.History(requestContext(c), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("failed to load assistant history")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load conversation")
	}
	return utils.SendSuccess(c, "conversation retrieved", messages)
}

func (h *AssistantHandler) send(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.AssistantMessageRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	exchange, err := h.service.Send(requestContext(c), studentID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyAssistantMessage):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.Fail(c, fiber.StatusBadRequest, "invalid message", validationDetails(err))
		case errors.Is(err, service.ErrAssistantBusy):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("assistant exchange failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to send message")
		}
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message sent", exchange)
}
