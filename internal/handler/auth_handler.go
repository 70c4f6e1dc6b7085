package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/utils"
)

// AuthHandler exposes the three-step login flow.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the login handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires login routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/otp", h.requestOTP)
	router.Post("/verify", h.verifyOTP)
	router.Post("/back", h.back)
}

func (h *AuthHandler) requestOTP(c *fiber.Ctx) error {
	var payload dto.OTPRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	challenge, err := h.service.RequestOTP(requestContext(c), payload)
	if err != nil {
		return h.authError(c, err, "Please enter your Student ID")
	}

	return utils.SendSuccess(c, "otp sent", challenge)
}

func (h *AuthHandler) verifyOTP(c *fiber.Ctx) error {
	var payload dto.VerifyOTPRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	auth, err := h.service.VerifyOTP(requestContext(c), payload)
	if err != nil {
		return h.authError(c, err, service.ErrInvalidOTP.Error())
	}

	return utils.SendSuccess(c, "authenticated", auth)
}

func (h *AuthHandler) back(c *fiber.Ctx) error {
	var payload dto.LoginBackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	state, err := h.service.Back(requestContext(c), payload)
	if err != nil {
		return h.authError(c, err, "challenge_id is required")
	}

	return utils.SendSuccess(c, "login reset", state)
}

func (h *AuthHandler) authError(c *fiber.Ctx, err error, validationMessage string) error {
	switch {
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, validationMessage, validationDetails(err))
	case errors.Is(err, service.ErrInvalidOTP):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrChallengeNotFound):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("login step failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}
}
