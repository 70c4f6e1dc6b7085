package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/utils"
)

// FeeHandler serves the fee quote and checkout.
type FeeHandler struct {
	service service.FeeService
	logger  zerolog.Logger
}

// NewFeeHandler constructs the fee handler.
func NewFeeHandler(service service.FeeService, logger zerolog.Logger) *FeeHandler {
	return &FeeHandler{
		service: service,
		logger:  logger.With().Str("component", "fee_handler").Logger(),
	}
}

// Register wires fee routes.
func (h *FeeHandler) Register(router fiber.Router) {
	router.Get("/quote", h.quote)
	router.Post("/checkout", h.checkout)
}

func (h *FeeHandler) quote(c *fiber.Ctx) error {
	selection, err := selectionFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid fee selection")
	}

	quote, err := h.service.Quote(requestContext(c), selection)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to quote fees")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to calculate fees")
	}
	return utils.SendSuccess(c, "fee quote calculated", quote)
}

func (h *FeeHandler) checkout(c *fiber.Ctx) error {
	studentID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	selection := dto.DefaultFeeSelection()
	if len(c.Body()) > 0 {
		var payload dto.CheckoutRequest
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
		if payload.Selection != nil {
			selection = *payload.Selection
		}
	}

	result, err := h.service.Checkout(requestContext(c), studentID, selection)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNothingToPay):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("checkout failed")
			return utils.SendError(c, fiber.StatusBadGateway, "payment provider unavailable")
		}
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "checkout created", result)
}

// selectionFromQuery starts from the form defaults and applies any provided toggles.
func selectionFromQuery(c *fiber.Ctx) (dto.FeeSelection, error) {
	selection := dto.DefaultFeeSelection()
	var err error
	if selection.Bundle, err = parseQueryBool(c, "bundle", selection.Bundle); err != nil {
		return selection, err
	}
	if selection.Language, err = parseQueryBool(c, "language", selection.Language); err != nil {
		return selection, err
	}
	if selection.Fine, err = parseQueryBool(c, "fine", selection.Fine); err != nil {
		return selection, err
	}
	if selection.FullTuition, err = parseQueryBool(c, "full", selection.FullTuition); err != nil {
		return selection, err
	}
	return selection, nil
}
