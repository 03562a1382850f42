package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/eventhub/internal/api/dto"
	"github.com/spec-kit/eventhub/internal/auth"
	"github.com/spec-kit/eventhub/internal/repository"
	"github.com/spec-kit/eventhub/internal/service"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

func sessionGuard(c *fiber.Ctx) (*auth.SessionGuard, error) {
	guard, ok := auth.GuardFromContext(c)
	if !ok {
		return nil, apperrors.NewInternalError(nil)
	}
	return guard, nil
}

func clientInfo(c *fiber.Ctx) service.ClientInfo {
	return service.ClientInfo{UserAgent: c.Get(fiber.HeaderUserAgent), IP: c.IP()}
}

func sessionResponse(guard *auth.SessionGuard) dto.SessionResponse {
	s := guard.Session()
	return dto.SessionResponse{
		UserAuthenticated:  s.UserAuthenticated,
		AdminAuthenticated: s.AdminAuthenticated,
		CurrentUserEmail:   s.CurrentUserEmail,
	}
}

func pageResponse[T any, R any](p repository.Page[T], mapFn func(*T) R) dto.PageResponse[R] {
	items := make([]R, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, mapFn(&p.Items[i]))
	}
	return dto.PageResponse[R]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid registration id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}
