package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/eventhub/internal/api/dto"
	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/repository"
	"github.com/spec-kit/eventhub/internal/service"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Registrations GET /api/admin/registrations.
func (h *AdminHandler) Registrations(c *fiber.Ctx) error {
	page, err := h.admin.Registrations(c.UserContext(), parseRegistrationQuery(c), parseInt(c.Query("page"), 1))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": pageResponse(page, dto.NewRegistrationResponse)})
}

// RegistrationsCSV GET /api/admin/registrations.csv.
func (h *AdminHandler) RegistrationsCSV(c *fiber.Ctx) error {
	data, err := h.admin.RegistrationsCSV(c.UserContext(), parseRegistrationQuery(c))
	if err != nil {
		return err
	}
	return sendCSV(c, service.RegistrationsCSVName, data)
}

// SetStatus PATCH /api/admin/registrations/:id/status.
func (h *AdminHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	reg, err := h.admin.SetStatus(c.UserContext(), id, domain.RegistrationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistrationResponse(reg)})
}

// ToggleStatus POST /api/admin/registrations/:id/toggle.
func (h *AdminHandler) ToggleStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	reg, err := h.admin.ToggleStatus(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistrationResponse(reg)})
}

// LoginLogs GET /api/admin/logins.
func (h *AdminHandler) LoginLogs(c *fiber.Ctx) error {
	page, err := h.admin.LoginLogs(c.UserContext(), c.Query("search"), parseInt(c.Query("page"), 1))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": page})
}

// LoginLogsCSV GET /api/admin/logins.csv.
func (h *AdminHandler) LoginLogsCSV(c *fiber.Ctx) error {
	data, err := h.admin.LoginLogsCSV(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return sendCSV(c, service.LoginsCSVName, data)
}

// Feedback GET /api/admin/feedback.
func (h *AdminHandler) Feedback(c *fiber.Ctx) error {
	items, err := h.admin.Feedback(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseRegistrationQuery(c *fiber.Ctx) repository.RegistrationQuery {
	return repository.RegistrationQuery{
		Search:     c.Query("search"),
		TicketType: domain.TicketType(c.Query("ticketType")),
		Gender:     domain.Gender(c.Query("gender")),
		Status:     domain.RegistrationStatus(c.Query("status")),
	}
}

func sendCSV(c *fiber.Ctx, filename string, data []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(data)
}
