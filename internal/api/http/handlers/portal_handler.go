package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/eventhub/internal/api/dto"
	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/service"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// PortalHandler serves the logged-in attendee portal.
type PortalHandler struct {
	portal *service.PortalService
}

// NewPortalHandler constructs handler.
func NewPortalHandler(portal *service.PortalService) *PortalHandler {
	return &PortalHandler{portal: portal}
}

// Overview GET /api/portal.
func (h *PortalHandler) Overview(c *fiber.Ctx) error {
	guard, err := sessionGuard(c)
	if err != nil {
		return err
	}
	overview, err := h.portal.Overview(c.UserContext(), guard)
	if err != nil {
		return err
	}
	p := overview.Profile
	return c.JSON(fiber.Map{"data": dto.PortalResponse{
		Event: overview.Event,
		Profile: dto.ProfileResponse{
			Registered:  p.Registered,
			Name:        p.Name,
			Email:       p.Email,
			TicketType:  p.TicketType,
			TicketLabel: p.TicketType.Label(),
			CreatedAt:   p.CreatedAt,
			LastLogin:   p.LastLogin,
		},
		Feedback: overview.Feedback,
		Tiles:    overview.Tiles,
	}})
}

// OpenTile POST /api/portal/tiles/:type.
func (h *PortalHandler) OpenTile(c *fiber.Ctx) error {
	guard, err := sessionGuard(c)
	if err != nil {
		return err
	}
	tile, err := h.portal.OpenTile(c.UserContext(), guard, domain.TileType(c.Params("type")), clientInfo(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tile})
}

// SubmitFeedback POST /api/portal/feedback.
func (h *PortalHandler) SubmitFeedback(c *fiber.Ctx) error {
	guard, err := sessionGuard(c)
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	fb, err := h.portal.SubmitFeedback(c.UserContext(), guard, req.Input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fb})
}

// FeedbackStats GET /api/portal/feedback/stats.
func (h *PortalHandler) FeedbackStats(c *fiber.Ctx) error {
	guard, err := sessionGuard(c)
	if err != nil {
		return err
	}
	stats, err := h.portal.FeedbackStats(c.UserContext(), guard)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
