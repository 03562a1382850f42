package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/eventhub/internal/api/dto"
	"github.com/spec-kit/eventhub/internal/service"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// PublicHandler serves the marketing page data and registration.
type PublicHandler struct {
	portal        *service.PortalService
	registrations *service.RegistrationService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(portal *service.PortalService, registrations *service.RegistrationService) *PublicHandler {
	return &PublicHandler{portal: portal, registrations: registrations}
}

// Event GET /api/event.
func (h *PublicHandler) Event(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.portal.EventDetails()})
}

// Session GET /api/session.
func (h *PublicHandler) Session(c *fiber.Ctx) error {
	guard, err := sessionGuard(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(guard)})
}

// Register POST /api/registrations.
func (h *PublicHandler) Register(c *fiber.Ctx) error {
	guard, err := sessionGuard(c)
	if err != nil {
		return err
	}
	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	reg, err := h.registrations.Register(c.UserContext(), guard, req.Input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewRegistrationResponse(reg)})
}
