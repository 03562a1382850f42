package repository

import (
	"strings"

	"github.com/spec-kit/eventhub/internal/domain"
)

// RegistrationQuery narrows the admin registration table. Zero fields match all.
type RegistrationQuery struct {
	Search     string
	TicketType domain.TicketType
	Gender     domain.Gender
	Status     domain.RegistrationStatus
}

// FilterRegistrations returns the matching records in their original order.
// The input slice is not modified.
func FilterRegistrations(list []domain.Registration, q RegistrationQuery) []domain.Registration {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Registration, 0, len(list))
	for _, reg := range list {
		if term != "" &&
			!strings.Contains(strings.ToLower(reg.Name), term) &&
			!strings.Contains(strings.ToLower(reg.Email), term) &&
			!strings.Contains(strings.ToLower(reg.Phone), term) {
			continue
		}
		if q.TicketType != "" && reg.TicketType != q.TicketType {
			continue
		}
		if q.Gender != "" && reg.Gender != q.Gender {
			continue
		}
		if q.Status != "" && reg.Status != q.Status {
			continue
		}
		out = append(out, reg)
	}
	return out
}

// FilterLoginLogs keeps entries whose email contains search, ignoring case.
func FilterLoginLogs(list []domain.LoginLog, search string) []domain.LoginLog {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.LoginLog, 0, len(list))
	for _, entry := range list {
		if term == "" || strings.Contains(strings.ToLower(entry.Email), term) {
			out = append(out, entry)
		}
	}
	return out
}

// Page is one slice of a longer listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate cuts items into pages of size and returns the 1-based page,
// clamped into range.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = 10
	}
	total := len(items)
	pages := (total + size - 1) / size
	if page < 1 {
		page = 1
	}
	if pages > 0 && page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      append([]T{}, items[start:end]...),
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pages,
	}
}
