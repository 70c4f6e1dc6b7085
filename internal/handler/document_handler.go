package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/utils"
)

// DocumentHandler serves the hall ticket and digital identity card.
type DocumentHandler struct {
	service service.DocumentService
	logger  zerolog.Logger
}

// NewDocumentHandler constructs the document handler.
func NewDocumentHandler(service service.DocumentService, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger.With().Str("component", "document_handler").Logger(),
	}
}

// Register wires document routes.
func (h *DocumentHandler) Register(router fiber.Router) {
	router.Get("/hall-ticket", h.hallTicket)
	router.Get("/digital-id", h.digitalID)
	router.Get("/digital-id/qr.png", h.digitalIDQR)
}

func (h *DocumentHandler) hallTicket(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	pdf, err := h.service.HallTicket(requestContext(c), studentID)
	if err != nil {
		var eligibility *service.EligibilityError
		if errors.As(err, &eligibility) {
			return utils.Fail(c, fiber.StatusForbidden, eligibility.Error(), eligibility.Eligibility)
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("hall ticket rendering failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate hall ticket")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", "hall-ticket.pdf"))
	return c.Send(pdf)
}

func (h *DocumentHandler) digitalID(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	card, err := h.service.DigitalID(requestContext(c), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("digital id lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load digital id")
	}
	return utils.SendSuccess(c, "digital id retrieved", card)
}

func (h *DocumentHandler) digitalIDQR(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	png, err := h.service.DigitalIDQR(requestContext(c), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("qr rendering failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate qr code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.Send(png)
}
