package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/utils"
)

// NoticeHandler serves the notice board.
type NoticeHandler struct {
	service service.NoticeService
	logger  zerolog.Logger
}

// NewNoticeHandler constructs the notice handler.
func NewNoticeHandler(service service.NoticeService, logger zerolog.Logger) *NoticeHandler {
	return &NoticeHandler{
		service: service,
		logger:  logger.With().Str("component", "notice_handler").Logger(),
	}
}

// Register wires notice routes.
func (h *NoticeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/:id/read", h.markRead)
}

func (h *NoticeHandler) list(c *fiber.Ctx) error {
	newOnly, err := parseQueryBool(c, "new_only", false)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid new_only flag")
	}

	notices, err := h.service.List(requestContext(c), newOnly)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list notices")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load notices")
	}
	return utils.SendSuccess(c, "notices retrieved", notices)
}

func (h *NoticeHandler) markRead(c *fiber.Ctx) error {
	notice, err := h.service.MarkRead(requestContext(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoticeNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Str("notice_id", c.Params("id")).Msg("failed to mark notice read")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update notice")
	}
	return utils.SendSuccess(c, "notice marked as read", notice)
}
