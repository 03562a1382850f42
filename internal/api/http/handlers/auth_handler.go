package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/eventhub/internal/api/dto"
	"github.com/spec-kit/eventhub/internal/service"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// AuthHandler exposes the user OTP flow and the admin login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// RequestOTP POST /api/auth/otp.
func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.auth.RequestUserOTP(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"sent":    true,
		"message": "OTP sent to " + req.Email,
	}})
}

// LoginUser POST /api/auth/login.
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	guard, err := sessionGuard(c)
	if err != nil {
		return err
	}
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	reg, err := h.auth.LoginUser(c.UserContext(), guard, req.Email, req.OTP, clientInfo(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"session":      sessionResponse(guard),
		"registration": dto.NewRegistrationResponse(reg),
	}})
}

// LogoutUser POST /api/auth/logout.
func (h *AuthHandler) LogoutUser(c *fiber.Ctx) error {
	guard, err := sessionGuard(c)
	if err != nil {
		return err
	}
	if err := h.auth.LogoutUser(c.UserContext(), guard); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(guard)})
}

// LoginAdmin POST /api/admin/login.
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	guard, err := sessionGuard(c)
	if err != nil {
		return err
	}
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.auth.LoginAdmin(c.UserContext(), guard, req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(guard)})
}

// LogoutAdmin POST /api/admin/logout.
func (h *AuthHandler) LogoutAdmin(c *fiber.Ctx) error {
	guard, err := sessionGuard(c)
	if err != nil {
		return err
	}
	if err := h.auth.LogoutAdmin(c.UserContext(), guard); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(guard)})
}
